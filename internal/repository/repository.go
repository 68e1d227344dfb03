package repository

import (
	"context"
	"database/sql"
	"time"

	"ac_remote_control/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// StateRepo persists the last known climate entity state.
type StateRepo interface {
	Save(ctx context.Context, s models.ClimateState) error
	// Load returns nil when nothing has been saved yet.
	Load(ctx context.Context) (*models.ClimateState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ClimateEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ClimateEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
