package room

import (
	"github.com/go-chi/chi/v5"

	"github.com/classcheck/classcheck-api/internal/middleware"
	"github.com/classcheck/classcheck-api/internal/pkg/jwt"
)

// Routes returns the room router. Reads are public; writes require an
// authenticated admin. The reservation and report routers are mounted
// under each room so the whole tree hangs off /rooms.
func Routes(handler *Handler, jwtService *jwt.Service, reservations, reports chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Use(middleware.RequireAdmin())

		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})

	if reservations != nil {
		r.Mount("/{id}/reservations", reservations)
		// Read alias used by the schedule screens.
		r.Mount("/{id}/schedule", reservations)
	}
	if reports != nil {
		r.Mount("/{id}/reports", reports)
	}

	return r
}
