package router

import (
	"quickcourt/internal/handlers/auth"
	"quickcourt/internal/handlers/booking"
	"quickcourt/internal/handlers/court"
	"quickcourt/internal/handlers/dashboard"
	"quickcourt/internal/handlers/tournament"
	"quickcourt/internal/handlers/user"
	"quickcourt/internal/handlers/venue"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	User       user.Handler
	Venue      venue.Handler
	Court      court.Handler
	Booking    booking.Handler
	Tournament tournament.Handler
	Dashboard  dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Venue.Router(routerGroup)
		r.DomainHandlers.Court.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Tournament.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
