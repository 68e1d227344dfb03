package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"ac_remote_control/internal/climate"
	"ac_remote_control/internal/models"
	"ac_remote_control/internal/remote"
	"ac_remote_control/internal/repository"
	"ac_remote_control/internal/repository/db"
	"ac_remote_control/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClimateStateSurvivesRestart(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "climate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repos := repository.NewRepository(conn)
	ctx := context.Background()
	settings := climate.Settings{
		Name:    "Living room",
		ACMode:  true,
		Presets: []climate.Preset{{Name: "eco", Temperature: 18}},
	}

	newController := func(sender remote.Sender) *climate.Controller {
		rec := service.NewRecorder(repos.StateRepo, repos.EventRepo, nil, nil, nil)
		return climate.NewController(settings, sender, service.NewStateStore(repos.StateRepo), rec, nil)
	}

	first := remote.NewFakeSender()
	c := newController(first)
	c.Start(ctx)
	require.NoError(t, c.SetHVACMode(ctx, models.HVACModeCool))
	require.NoError(t, c.SetPresetMode(ctx, "eco"))
	require.Equal(t, 2, first.Calls())

	second := remote.NewFakeSender()
	restarted := newController(second)
	restarted.Start(ctx)

	st := restarted.Snapshot()
	assert.Equal(t, models.HVACModeCool, st.HVACMode)
	assert.Equal(t, "eco", st.PresetMode)
	require.NotNil(t, st.TargetTemperature)
	assert.Equal(t, 18.0, *st.TargetTemperature)
	assert.Zero(t, second.Calls(), "restored state is not resent")

	evs, err := service.NewEventLogService(repos.EventRepo).List(ctx, service.LogFilter{Type: models.EventCommandSent})
	require.NoError(t, err)
	assert.Len(t, evs, 2)
}

func TestClimateStatePersistsWhenRequestIsCancelled(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "climate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repos := repository.NewRepository(conn)
	target := 22.0
	settings := climate.Settings{Name: "Living room", ACMode: true, TargetTemp: &target}
	newController := func() *climate.Controller {
		rec := service.NewRecorder(repos.StateRepo, repos.EventRepo, nil, nil, nil)
		return climate.NewController(settings, remote.NewFakeSender(), service.NewStateStore(repos.StateRepo), rec, nil)
	}

	c := newController()
	c.Start(context.Background())

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, c.SetHVACMode(reqCtx, models.HVACModeCool))

	saved, err := repos.StateRepo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, models.HVACModeCool, saved.HVACMode)

	evs, err := service.NewEventLogService(repos.EventRepo).List(context.Background(), service.LogFilter{Type: models.EventCommandSent})
	require.NoError(t, err)
	assert.Len(t, evs, 1)

	restarted := newController()
	restarted.Start(context.Background())
	assert.Equal(t, models.HVACModeCool, restarted.Snapshot().HVACMode)
}
