package sig

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"socialdown/pkg/logster"
)

var ErrSignalReceived = errors.New("shutdown signal received")

// ListenSignal blocks until SIGINT/SIGTERM arrives or ctx is cancelled.
// On a signal it cancels the application context and returns
// ErrSignalReceived so the caller can tell a clean stop from a crash.
func ListenSignal(ctx context.Context, logger logster.Logger, cancel context.CancelFunc) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	select {
	case s := <-ch:
		logger.Infof("received signal: %s", s)
		cancel()
		return ErrSignalReceived
	case <-ctx.Done():
		return nil
	}
}
