package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Trace-id injection runs first so the logging
// middleware and every handler see a request-scoped logger in the context.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/passwords", h.listPasswords)
		r.Post("/passwords", h.addPassword)
		r.Post("/passwords/batch", h.batchAddPasswords)
		r.Patch("/passwords/{id}", h.updatePassword)
		r.Delete("/passwords/{id}", h.deletePassword)

		r.Get("/stats", h.getStats)
		r.Get("/health", h.health)
	})

	return router
}
