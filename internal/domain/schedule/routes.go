package schedule

import (
	"github.com/go-chi/chi/v5"

	"github.com/classcheck/classcheck-api/internal/middleware"
	"github.com/classcheck/classcheck-api/internal/pkg/jwt"
)

// RoomRoutes returns the per-room reservation router, mounted under
// /rooms/{id}/reservations. Reads are public; writes require admin.
func RoomRoutes(handler *Handler, jwtService *jwt.Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/", handler.Week)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Use(middleware.RequireAdmin())

		r.Post("/", handler.Create)
	})

	return r
}

// ParseRoutes returns the natural-language drafting router, mounted
// under /schedule.
func ParseRoutes(handler *ParseHandler, jwtService *jwt.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))
	r.Post("/parse", handler.Parse)
	return r
}

// Routes returns the router for operating on a reservation by its own
// ID, mounted under /reservations.
func Routes(handler *Handler, jwtService *jwt.Service) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Use(middleware.RequireAdmin())

		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})

	return r
}
