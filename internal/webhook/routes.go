package webhook

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires the handler set into a chi router.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", h.handleHealth)
	r.Get("/webhook", h.handleVerify)
	r.Post("/webhook", h.handleWebhook)
	r.Get("/conversations/{number}", h.handleConversation)
	r.Post("/admin/directory/reload", h.handleDirectoryReload)

	return r
}
