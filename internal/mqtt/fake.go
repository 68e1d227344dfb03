package mqtt

import (
	"sync"

	"ac_remote_control/internal/models"
)

// FakePublisher records published states for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	States   []models.ClimateState
	Reasons  []string
	Payloads [][]byte

	// PublishError, if set, is returned by PublishState.
	PublishError error

	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishState(st models.ClimateState, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatStatePayload(st, reason)
	if err != nil {
		return err
	}
	f.States = append(f.States, st)
	f.Reasons = append(f.Reasons, reason)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
