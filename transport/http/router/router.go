package router

import (
	"rental/internal/handlers/booking"
	"rental/internal/handlers/vehicle"
	"rental/transport/http/middleware"

	_ "rental/docs" // swagger spec

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Booking booking.Handler
	Vehicle vehicle.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.APIKey, r.Auth.Auth, r.Auth.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
