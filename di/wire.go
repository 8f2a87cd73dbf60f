//go:build wireinject
// +build wireinject

package di

import (
	"hoteldesk/config"
	"hoteldesk/infras/jwt"
	"hoteldesk/infras/kafka"
	"hoteldesk/infras/otel"
	"hoteldesk/infras/postgres"
	"hoteldesk/infras/redis"
	"hoteldesk/infras/s3"
	"hoteldesk/permissions"
	"hoteldesk/shared/cache"
	"hoteldesk/transport/http"
	"hoteldesk/transport/http/middleware"
	"hoteldesk/transport/http/router"

	"github.com/google/wire"

	authService "hoteldesk/internal/domains/auth/service"
	billRepository "hoteldesk/internal/domains/bill/repository"
	billService "hoteldesk/internal/domains/bill/service"
	bookingRepository "hoteldesk/internal/domains/booking/repository"
	bookingService "hoteldesk/internal/domains/booking/service"
	photoRepository "hoteldesk/internal/domains/photo/repository"
	photoService "hoteldesk/internal/domains/photo/service"
	roomRepository "hoteldesk/internal/domains/room/repository"
	roomService "hoteldesk/internal/domains/room/service"
	statsService "hoteldesk/internal/domains/stats/service"
	userRepository "hoteldesk/internal/domains/user/repository"
	userService "hoteldesk/internal/domains/user/service"

	authHandler "hoteldesk/internal/handlers/auth"
	billHandler "hoteldesk/internal/handlers/bill"
	bookingHandler "hoteldesk/internal/handlers/booking"
	photoHandler "hoteldesk/internal/handlers/photo"
	roomHandler "hoteldesk/internal/handlers/room"
	statsHandler "hoteldesk/internal/handlers/stats"
	userHandler "hoteldesk/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var billDomain = wire.NewSet(
	billRepository.New,
	billService.New,
)

var statsDomain = wire.NewSet(
	statsService.New,
)

var photoDomain = wire.NewSet(
	photoRepository.New,
	photoService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	billDomain,
	statsDomain,
	photoDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	billHandler.New,
	statsHandler.New,
	photoHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
