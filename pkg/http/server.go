package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"socialdown/pkg/logster"
)

const shutdownTimeout = 10 * time.Second

// NewHandler assembles a chi router at basePath from the given options.
func NewHandler(basePath string, options ...RouterOption) chi.Router {
	r := chi.NewRouter()
	if basePath == "" || basePath == "/" {
		for _, option := range options {
			option(r)
		}
		return r
	}
	r.Route(basePath, func(sub chi.Router) {
		for _, option := range options {
			option(sub)
		}
	})
	return r
}

// RunServer serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func RunServer(ctx context.Context, addr string, logger logster.Logger, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(logger, "", 0),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("http server listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Infof("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
