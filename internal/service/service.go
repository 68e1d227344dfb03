package service

import (
	"context"
	"time"

	"ac_remote_control/internal/models"
	"ac_remote_control/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Climate exposes the thermostat service calls. *climate.Controller
// implements it.
type Climate interface {
	SetHVACMode(ctx context.Context, mode models.HVACMode) error
	SetTemperature(ctx context.Context, temperature *float64) error
	SetPresetMode(ctx context.Context, preset string) error
	GetState(ctx context.Context) (models.ClimateState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ClimateEvent, error)
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "" or one of the models.Event* types
}

// Service aggregates the sub-services used by the HTTP handlers.
type Service struct {
	Climate
	EventLog
	Authorization
}

func NewService(repos *repository.Repository, climate Climate, auth AuthConfig) *Service {
	return &Service{
		Climate:       climate,
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
