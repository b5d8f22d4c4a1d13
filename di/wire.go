//go:build wireinject
// +build wireinject

package di

import (
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/infras/redis"
	"rental/infras/s3"
	"rental/permissions"
	"rental/shared/cache"
	"rental/shared/clock"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"
	"rental/transport/worker"

	"github.com/google/wire"

	assignmentPublisher "rental/internal/domains/assignment/publisher"
	assignmentService "rental/internal/domains/assignment/service"
	bookingRepository "rental/internal/domains/booking/repository"
	bookingService "rental/internal/domains/booking/service"
	notificationService "rental/internal/domains/notification/service"
	slotRepository "rental/internal/domains/slot/repository"
	slotService "rental/internal/domains/slot/service"
	userRepository "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	vehicleRepository "rental/internal/domains/vehicle/repository"
	vehicleService "rental/internal/domains/vehicle/service"
	bookingHandler "rental/internal/handlers/booking"
	vehicleHandler "rental/internal/handlers/vehicle"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
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
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.NewRealClock,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
	wire.Bind(new(slotService.Holders), new(bookingRepository.Booking)),
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.NewReservation,
	bookingService.NewApproval,
	assignmentPublisher.New,
)

var assignmentDomain = wire.NewSet(
	assignmentService.NewWorker,
	assignmentService.NewReconciler,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	vehicleHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		slotDomain,
		vehicleDomain,
		notificationDomain,
		bookingDomain,
		routing,
		wire.Bind(new(http.HealthChecker), new(*postgres.Connection)),
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Runtime {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		slotDomain,
		vehicleDomain,
		userDomain,
		notificationDomain,
		bookingDomain,
		assignmentDomain,
		worker.New,
		wire.Struct(new(worker.Runtime), "*"),
	)

	return &worker.Runtime{}
}
