package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the dashboard routes on router.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/panel/upload", http.StatusFound)
	})
	router.Get("/panel/{slug}", h.HandlePanel)
	router.Post("/upload", h.HandleUpload)
	router.Post("/reset", h.HandleReset)
	router.Get("/healthz", h.HandleHealth)
}
