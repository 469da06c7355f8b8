package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router assembles the HTTP surface. Everything that reads or mutates
// chat state sits behind RequireIdentity; the session endpoints and the
// health probe stay open.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HandleHealth)
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/check-auth", h.HandleCheckAuth)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireIdentity)
		r.Get("/messages", h.HandleListMessages)
		r.Post("/messages", h.HandlePostMessage)
		r.Get("/messages/search", h.HandleSearchMessages)
		r.Get("/stats", h.HandleStats)
		r.Get("/events", h.HandleEvents)
	})

	return r
}
