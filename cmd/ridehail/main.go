package main

import (
	"context"
	"log/slog"
	"os"

	"ridehail/config"
	"ridehail/internal/delivery"
	"ridehail/internal/delivery/http"
	"ridehail/internal/delivery/http/middleware"
	"ridehail/internal/delivery/http/router/handler"
	"ridehail/internal/infra/auth"
	"ridehail/internal/infra/geo"
	logs "ridehail/internal/infra/log"
	"ridehail/internal/infra/persistence"
	"ridehail/internal/infra/pubsub"
	"ridehail/internal/infra/qrcode"
	"ridehail/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
			geo.NewFareEstimator,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewTripService,
			impl.NewDriverService,
			impl.NewVehicleService,
			impl.NewPaymentService,
			impl.NewRatingService,
			impl.NewAnalyticsService,
			impl.NewDemoService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewTripHandler,
			handler.NewDriverHandler,
			handler.NewVehicleHandler,
			handler.NewPaymentHandler,
			handler.NewRatingHandler,
			handler.NewUserHandler,
			handler.NewAnalyticsHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
