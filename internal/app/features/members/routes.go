package members

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/nexohub/internal/app/system/auth"
)

// Routes returns the /members subrouter. The directory and invitations
// require a verified session.
func Routes(h *Handler, guard *auth.Guard) chi.Router {
	r := chi.NewRouter()
	r.Use(guard.RequireMember)
	r.Get("/", h.ServeList)
	r.Get("/connections", h.ServeConnections)
	r.Post("/invite-cafe", h.ServeInviteCafe)
	return r
}
