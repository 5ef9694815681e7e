package contact

import "github.com/go-chi/chi/v5"

// Routes returns the /contact subrouter. Lead capture is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeContact)
	return r
}
