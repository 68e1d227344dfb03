// Package scheduler drives the periodic keep-alive re-evaluation.
package scheduler

import (
	"context"
	"time"

	"ac_remote_control/internal/logger"

	"github.com/robfig/cron/v3"
)

// Ticker is re-evaluated on every keep-alive interval.
type Ticker interface {
	Tick(ctx context.Context, now time.Time)
}

// KeepAlive fires Tick on a fixed interval. Overlapping ticks are skipped.
type KeepAlive struct {
	cron     *cron.Cron
	interval time.Duration
	target   Ticker
	log      *logger.Logger
	entry    cron.EntryID
}

// stopTimeout bounds how long Stop waits for a running tick.
const stopTimeout = 10 * time.Second

func NewKeepAlive(interval time.Duration, target Ticker, log *logger.Logger) *KeepAlive {
	if log == nil {
		log = logger.Nop()
	}
	cl := cronLogger{log: log}
	return &KeepAlive{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(
				cron.SkipIfStillRunning(cl),
				cron.Recover(cl),
			),
		),
		interval: interval,
		target:   target,
		log:      log,
	}
}

// Start schedules the keep-alive job. It reports false when no interval is
// configured. Ticks run with ctx.
func (k *KeepAlive) Start(ctx context.Context) bool {
	if k.interval <= 0 {
		k.log.Infow("keep_alive_disabled")
		return false
	}
	k.entry = k.cron.Schedule(cron.Every(k.interval), cron.FuncJob(func() {
		k.target.Tick(ctx, time.Now())
	}))
	k.cron.Start()
	k.log.Infow("keep_alive_started", "interval", k.interval)
	return true
}

// Next returns the next scheduled tick, or the zero time when not started.
func (k *KeepAlive) Next() time.Time {
	if k.entry == 0 {
		return time.Time{}
	}
	return k.cron.Entry(k.entry).Next
}

// Stop halts scheduling and waits for an in-flight tick.
func (k *KeepAlive) Stop() {
	ctx := k.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(stopTimeout):
		k.log.Warnw("keep_alive_stop_timeout", "timeout", stopTimeout)
	}
}

// cronLogger routes cron's logging through zap.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron_"+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron_"+msg, append(keysAndValues, "err", err)...)
}
