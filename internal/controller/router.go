package controller

import (
	"github.com/go-chi/chi/v5"

	pkghttp "socialdown/pkg/http"
)

func WithApiHandler(api HandlerInterface) pkghttp.RouterOption {
	return func(r chi.Router) {
		r.Route("/api/downloads", func(r chi.Router) {
			r.Post("/", api.CreateDownload)
			r.Get("/", api.ListDownloads)
			r.Get("/{download_id}", api.GetDownload)
		})
	}
}
