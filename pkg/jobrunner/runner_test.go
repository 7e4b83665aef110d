package jobrunner

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdown/pkg/logster"
)

func testLogger() logster.Logger {
	return logster.New(os.Stdout, logster.Config{Project: "test", Level: "error"})
}

func TestRunner_Go(t *testing.T) {
	r := New(context.Background(), testLogger())

	done := make(chan string, 1)
	require.NoError(t, r.Go("job-1", func(ctx context.Context) {
		done <- "job-1"
	}))

	select {
	case id := <-done:
		assert.Equal(t, "job-1", id)
	case <-time.After(time.Second):
		t.Fatal("worker never ran")
	}
	require.NoError(t, r.Shutdown(context.Background()))
}

func TestRunner_RefusesDuplicateId(t *testing.T) {
	r := New(context.Background(), testLogger())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, r.Go("job-1", func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started

	assert.ErrorIs(t, r.Go("job-1", func(ctx context.Context) {}), ErrAlreadyRunning)
	assert.Equal(t, 1, r.Active())

	close(release)
	require.NoError(t, r.Shutdown(context.Background()))
	assert.Equal(t, 0, r.Active())
}

func TestRunner_ShutdownCancelsWorkers(t *testing.T) {
	r := New(context.Background(), testLogger())

	cancelled := make(chan struct{})
	require.NoError(t, r.Go("job-1", func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	}))

	require.NoError(t, r.Shutdown(context.Background()))
	select {
	case <-cancelled:
	default:
		t.Fatal("worker context was not cancelled")
	}

	assert.ErrorIs(t, r.Go("job-2", func(ctx context.Context) {}), ErrShuttingDown)
}

func TestRunner_BaseContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx, testLogger())

	cancelled := make(chan struct{})
	require.NoError(t, r.Go("job-1", func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	}))

	cancel()
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("worker did not observe base context cancellation")
	}
	require.NoError(t, r.Shutdown(context.Background()))
}
