package authflow

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/nexohub/internal/app/system/auth"
)

// Routes returns the /auth subrouter. Send-code and login are public;
// logout and session require a verified session.
func Routes(h *Handler, guard *auth.Guard) chi.Router {
	r := chi.NewRouter()
	r.Post("/send-code", h.ServeSendCode)
	r.Post("/login", h.ServeLogin)

	r.Group(func(r chi.Router) {
		r.Use(guard.RequireMember)
		r.Post("/logout", h.ServeLogout)
		r.Get("/session", h.ServeSession)
	})
	return r
}
