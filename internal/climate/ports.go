package climate

import (
	"context"
	"time"

	"ac_remote_control/internal/models"
	"ac_remote_control/internal/remote"
)

// StateStore returns the last persisted snapshot, or nil when there is none.
type StateStore interface {
	LastState(ctx context.Context) (*models.ClimateState, error)
}

// Notifier receives state publications and command outcomes.
type Notifier interface {
	// StateChanged publishes the displayed state. reason is one of the
	// models.Event* types.
	StateChanged(ctx context.Context, st models.ClimateState, reason string)
	CommandDispatched(ctx context.Context, p remote.Payload, ok bool)
	CommandSuppressed(ctx context.Context, sinceLast time.Duration)
}

type nopNotifier struct{}

func (nopNotifier) StateChanged(context.Context, models.ClimateState, string) {}
func (nopNotifier) CommandDispatched(context.Context, remote.Payload, bool) {}
func (nopNotifier) CommandSuppressed(context.Context, time.Duration) {}

type nopStore struct{}

func (nopStore) LastState(context.Context) (*models.ClimateState, error) { return nil, nil }
