package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialdown/pkg/logster"
)

func DefaultTechOptions() RouterOption {
	return RouterOptions(
		WithRecover(),
		WithDebugHandler(),
		WithMetricsHandler(),
	)
}

func RouterOptions(options ...RouterOption) func(chi.Router) {
	return func(r chi.Router) {
		for _, option := range options {
			option(r)
		}
	}
}

type RouterOption func(chi.Router)

func WithDebugHandler() RouterOption {
	return func(r chi.Router) {
		r.Mount("/debug", middleware.Profiler())
	}
}

func WithMetricsHandler() RouterOption {
	return func(r chi.Router) {
		r.Handle("/metrics", promhttp.Handler())
	}
}

func WithRecover() RouterOption {
	return func(r chi.Router) {
		r.Use(middleware.Recoverer)
	}
}

func WithLogger(logger logster.Logger) RouterOption {
	return func(r chi.Router) {
		r.Use(logster.LogsterMiddleware(logger))
	}
}
