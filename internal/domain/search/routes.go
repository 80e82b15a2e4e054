package search

import "github.com/go-chi/chi/v5"

// Routes returns the search router. Search is public.
func Routes(handler *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handler.Search)
	r.Post("/", handler.Query)
	return r
}
