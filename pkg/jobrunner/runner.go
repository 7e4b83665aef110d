package jobrunner

import (
	"context"
	"errors"
	"sync"

	"socialdown/pkg/logster"
)

var (
	ErrAlreadyRunning = errors.New("worker already running for this id")
	ErrShuttingDown   = errors.New("runner is shutting down")
)

type RunnerInterface interface {
	Go(id string, fn func(ctx context.Context)) error
	Shutdown(ctx context.Context) error
}

// Runner spawns one goroutine per job id and tracks it until it
// finishes. A second worker for the same id is refused while the first
// is alive, which keeps the single-writer-per-download guarantee.
type Runner struct {
	base   context.Context
	logger logster.Logger

	mu     sync.Mutex
	wg     sync.WaitGroup
	active map[string]context.CancelFunc
	closed bool
}

// New creates a runner whose workers inherit from ctx; cancelling ctx
// cancels every worker.
func New(ctx context.Context, logger logster.Logger) *Runner {
	return &Runner{
		base:   ctx,
		logger: logger.WithField("Layer", "JobRunner"),
		active: make(map[string]context.CancelFunc),
	}
}

func (r *Runner) Go(id string, fn func(ctx context.Context)) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrShuttingDown
	}
	if _, ok := r.active[id]; ok {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(r.base)
	r.active[id] = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Infof("worker started for id %s", id)
	go func() {
		defer func() {
			cancel()
			r.mu.Lock()
			delete(r.active, id)
			r.mu.Unlock()
			r.wg.Done()
		}()
		fn(ctx)
	}()
	return nil
}

// Active returns the number of workers currently running.
func (r *Runner) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Shutdown cancels all workers and waits for them to drain, or returns
// the ctx error if the deadline hits first.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for _, cancel := range r.active {
		cancel()
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Infof("all workers drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
