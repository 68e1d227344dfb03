package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ac_remote_control/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	climateStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO climate_state (id, hvac_mode, target_temp, preset_mode, hvac_action, last_send_ok, last_action_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hvac_mode=excluded.hvac_mode,
			target_temp=excluded.target_temp,
			preset_mode=excluded.preset_mode,
			hvac_action=excluded.hvac_action,
			last_send_ok=excluded.last_send_ok,
			last_action_at=excluded.last_action_at,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT hvac_mode, target_temp, preset_mode, hvac_action, last_send_ok, last_action_at, updated_at
		FROM climate_state WHERE id=?
	`
)

// Save upserts the climate_state row (id always 1). Only the attributes
// needed to restore the entity are stored.
func (r *StateSQLite) Save(ctx context.Context, st models.ClimateState) error {
	updated := st.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	} else {
		updated = updated.UTC()
	}

	var target sql.NullFloat64
	if st.TargetTemperature != nil {
		target = sql.NullFloat64{Float64: *st.TargetTemperature, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		climateStateRowID,
		string(st.HVACMode),
		target,
		st.PresetMode,
		string(st.HVACAction),
		st.LastSendSucceeded,
		st.LastActionAt.UTC(),
		updated,
	)
	if err != nil {
		return fmt.Errorf("save climate state: %w", err)
	}
	return nil
}

// Load fetches the climate_state row. It returns (nil, nil) when no state
// has been saved yet.
func (r *StateSQLite) Load(ctx context.Context) (*models.ClimateState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, climateStateRowID)

	var (
		st     models.ClimateState
		mode   string
		action string
		target sql.NullFloat64
	)
	if err := row.Scan(
		&mode,
		&target,
		&st.PresetMode,
		&action,
		&st.LastSendSucceeded,
		&st.LastActionAt,
		&st.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load climate state: %w", err)
	}

	st.HVACMode = models.HVACMode(mode)
	st.HVACAction = models.HVACAction(action)
	if target.Valid {
		v := target.Float64
		st.TargetTemperature = &v
	}
	st.LastActionAt = st.LastActionAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}
