package logster

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// LogsterMiddleware logs one line per served request.
func LogsterMiddleware(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.
				WithField("method", r.Method).
				WithField("path", r.URL.Path).
				WithField("status", ww.Status()).
				Infof("request served in %s", time.Since(start))
		})
	}
}
