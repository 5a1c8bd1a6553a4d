package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// SetupRoutes wires the generation service endpoints.
func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, mw := range SetupMiddleware() {
		r.Use(mw)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rivers", handler.GenerateRiver)
		r.Get("/rivers", handler.ListRivers)
		r.Get("/rivers/{id}", handler.GetRiver)
		r.Delete("/rivers/{id}", handler.DeleteRiver)
	})

	return r
}
