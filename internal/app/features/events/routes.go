package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/nexohub/internal/app/system/auth"
)

// Routes returns the /events subrouter. All event endpoints require a
// verified session.
func Routes(h *Handler, guard *auth.Guard) chi.Router {
	r := chi.NewRouter()
	r.Use(guard.RequireMember)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Post("/{id}/register", h.ServeRegister)
	return r
}
