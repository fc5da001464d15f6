package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/", h.page)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.version)
		r.Get("/state", h.state)

		r.Post("/generate", h.generate)
		r.Put("/prompt", h.setPrompt)

		r.Get("/images", h.listImages)
		r.Route("/images/{id}", func(r chi.Router) {
			r.Get("/", h.getImage)
			r.Post("/select", h.selectImage)
			r.Get("/download", h.download)
			r.Post("/remix", h.remix)
			r.Post("/export", h.export)
		})
		r.Delete("/viewer", h.closeViewer)

		r.Get("/key", h.keyStatus)
		r.Put("/key", h.saveKey)
		r.Post("/key/validate", h.validateKey)
		r.Delete("/key", h.clearKey)
	})

	return router
}
