package remote

import (
	"context"
	"fmt"

	"ac_remote_control/internal/logger"
)

type job struct {
	payload Payload
	result  chan bool
}

// Worker runs sends on its own goroutine so a slow device never blocks the
// caller's goroutine beyond waiting for the result. Jobs run one at a time.
type Worker struct {
	next Sender
	jobs chan job
	done chan struct{}
	log  *logger.Logger
}

func NewWorker(next Sender, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{
		next: next,
		jobs: make(chan job),
		done: make(chan struct{}),
		log:  log,
	}
}

var _ Dispatcher = (*Worker)(nil)

// Run executes queued jobs until ctx is canceled. It must be called once.
// Sends issued by Run use ctx, not the submitter's context, so an abandoned
// API request cannot abort a command halfway.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-w.jobs:
			j.result <- w.next.Send(ctx, j.payload)
		}
	}
}

// Dispatch hands p to the worker and waits for the outcome. It returns
// ErrNotDispatched when the worker has stopped or ctx ends before the job is
// accepted. Once accepted, the caller waits for the result regardless of ctx.
func (w *Worker) Dispatch(ctx context.Context, p Payload) (bool, error) {
	j := job{payload: p, result: make(chan bool, 1)}
	select {
	case w.jobs <- j:
	case <-w.done:
		return false, ErrNotDispatched
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %v", ErrNotDispatched, ctx.Err())
	}
	return <-j.result, nil
}

// Send is Dispatch reduced to the Sender contract.
func (w *Worker) Send(ctx context.Context, p Payload) bool {
	ok, err := w.Dispatch(ctx, p)
	if err != nil {
		w.log.Warnw("rest_command_not_dispatched", "err", err)
	}
	return ok
}
