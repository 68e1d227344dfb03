package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ac_remote_control/internal/climate"
	"ac_remote_control/internal/config"
	"ac_remote_control/internal/handlers"
	"ac_remote_control/internal/logger"
	"ac_remote_control/internal/metrics"
	"ac_remote_control/internal/mqtt"
	"ac_remote_control/internal/remote"
	"ac_remote_control/internal/repository"
	"ac_remote_control/internal/repository/db"
	"ac_remote_control/internal/scheduler"
	"ac_remote_control/internal/server"
	"ac_remote_control/internal/service"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := repository.NewRepository(conn)
	m := metrics.New()
	publisher := connectMQTT(cfg.MQTT, log)

	sender := remote.NewRESTSender(cfg.REST.URL, remote.Credentials{
		Username: cfg.REST.Username,
		Password: cfg.REST.Password,
	}, cfg.REST.Timeout, log.Named("remote"))
	worker := remote.NewWorker(sender, log.Named("remote"))
	go worker.Run(ctx)

	recorder := service.NewRecorder(repos.StateRepo, repos.EventRepo, publisher, m, log.Named("recorder"))
	controller := climate.NewController(
		cfg.Climate.Settings(),
		worker,
		service.NewStateStore(repos.StateRepo),
		recorder,
		log.Named("climate"),
	)
	controller.Start(ctx)

	keepAlive := scheduler.NewKeepAlive(cfg.Climate.KeepAlive, controller, log.Named("keep_alive"))
	keepAlive.Start(ctx)

	services := service.NewService(repos, controller, service.AuthConfig{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"), m.Handler()).
		AllowOrigins(cfg.CORSOrigins...)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	go func() {
		log.Infow("http_server_started", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(log)

	keepAlive.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	// in-flight setters may still need the worker until the server drains
	cancel()
	if publisher != nil {
		_ = publisher.Close()
	}
}

// connectMQTT returns nil when no broker is configured or it is unreachable;
// state publication is optional.
func connectMQTT(cfg config.MQTTConfig, log *logger.Logger) mqtt.Publisher {
	if cfg.Broker == "" {
		return nil
	}
	pub, err := mqtt.NewRealPublisher(cfg.Broker, cfg.ClientID, cfg.Topic)
	if err != nil {
		log.Warnw("mqtt_unavailable", "broker", cfg.Broker, "err", err)
		return nil
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "topic", cfg.Topic)
	return pub
}

func waitForShutdown(log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down server...")
}
