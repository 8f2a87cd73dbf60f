package router

import (
	"hoteldesk/internal/handlers/auth"
	"hoteldesk/internal/handlers/bill"
	"hoteldesk/internal/handlers/booking"
	"hoteldesk/internal/handlers/photo"
	"hoteldesk/internal/handlers/room"
	"hoteldesk/internal/handlers/stats"
	"hoteldesk/internal/handlers/user"
	"hoteldesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Bill    bill.Handler
	Stats   stats.Handler
	Photo   photo.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.Middleware.APIKey)
			protected.Use(r.Middleware.Auth)
			protected.Use(r.Middleware.RBAC)

			r.DomainHandlers.Room.Router(protected)
			r.DomainHandlers.Booking.Router(protected)
			r.DomainHandlers.Bill.Router(protected)
			r.DomainHandlers.Stats.Router(protected)
			r.DomainHandlers.Photo.Router(protected)
			r.DomainHandlers.User.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     authRole,
	}
}
