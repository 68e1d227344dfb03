package remote

import (
	"context"
	"sync"
)

// FakeSender records payloads for test assertions.
type FakeSender struct {
	mu sync.Mutex

	// Payloads contains every payload passed to Send.
	Payloads []Payload

	// Fail makes Send report failure.
	Fail bool

	// Block, if set, is waited on before Send returns.
	Block chan struct{}
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (f *FakeSender) Send(ctx context.Context, p Payload) bool {
	f.mu.Lock()
	f.Payloads = append(f.Payloads, p)
	fail := f.Fail
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return !fail
}

// Calls returns the number of Send invocations.
func (f *FakeSender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Payloads)
}

// Last returns the most recent payload.
func (f *FakeSender) Last() (Payload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Payloads) == 0 {
		return Payload{}, false
	}
	return f.Payloads[len(f.Payloads)-1], true
}

// SetFail toggles the reported outcome.
func (f *FakeSender) SetFail(fail bool) {
	f.mu.Lock()
	f.Fail = fail
	f.mu.Unlock()
}
