package report

import (
	"github.com/go-chi/chi/v5"

	"github.com/classcheck/classcheck-api/internal/middleware"
	"github.com/classcheck/classcheck-api/internal/pkg/jwt"
)

// RoomRoutes returns the per-room report router, mounted under
// /rooms/{id}/reports. Filing needs a logged-in user; reading the
// room's history is admin-only.
func RoomRoutes(handler *Handler, jwtService *jwt.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))

	r.Post("/", handler.Create)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Get("/", handler.ListByRoom)
	})

	return r
}

// Routes returns the admin report queue router, mounted under /reports.
func Routes(handler *Handler, jwtService *jwt.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))
	r.Use(middleware.RequireAdmin())

	r.Get("/", handler.ListOpen)
	r.Post("/{id}/resolve", handler.Resolve)

	return r
}
