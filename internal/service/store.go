package service

import (
	"context"

	"ac_remote_control/internal/models"
	"ac_remote_control/internal/repository"
)

// StateStore serves the last persisted snapshot to the controller on start.
type StateStore struct {
	stateRepo repository.StateRepo
}

func NewStateStore(stateRepo repository.StateRepo) *StateStore {
	return &StateStore{stateRepo: stateRepo}
}

// LastState returns nil when nothing was persisted yet.
func (s *StateStore) LastState(ctx context.Context) (*models.ClimateState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil || st == nil {
		return nil, err
	}
	st.UpdatedAt = normalizeToUTC(st.UpdatedAt)
	st.LastActionAt = normalizeToUTC(st.LastActionAt)
	return st, nil
}
