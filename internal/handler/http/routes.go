package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// promhttp compresses on its own
	router.Handle("/metrics", promhttp.Handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Post("/api/devices", h.registerDevice)
		r.Get("/api/version/", h.getServerVersion)
	})

	// device routes
	router.Group(func(r chi.Router) {
		r.Use(withGZip, h.auth)

		r.With(h.checkHash).Post("/api/sync/{namespace}", h.submitQuery)
		r.Get("/api/blobs/{path}", h.downloadBlob)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
