// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ridehail/internal/delivery/http/middleware"
	"ridehail/internal/delivery/http/router/handler"
	"ridehail/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	TripHandler      *handler.TripHandler
	DriverHandler    *handler.DriverHandler
	VehicleHandler   *handler.VehicleHandler
	PaymentHandler   *handler.PaymentHandler
	RatingHandler    *handler.RatingHandler
	UserHandler      *handler.UserHandler
	AnalyticsHandler *handler.AnalyticsHandler
	HealthHandler    *handler.HealthHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	tripHandler      *handler.TripHandler
	driverHandler    *handler.DriverHandler
	vehicleHandler   *handler.VehicleHandler
	paymentHandler   *handler.PaymentHandler
	ratingHandler    *handler.RatingHandler
	userHandler      *handler.UserHandler
	analyticsHandler *handler.AnalyticsHandler
	healthHandler    *handler.HealthHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		tripHandler:      params.TripHandler,
		driverHandler:    params.DriverHandler,
		vehicleHandler:   params.VehicleHandler,
		paymentHandler:   params.PaymentHandler,
		ratingHandler:    params.RatingHandler,
		userHandler:      params.UserHandler,
		analyticsHandler: params.AnalyticsHandler,
		healthHandler:    params.HealthHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authn := r.authMiddleware.Authenticate
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)
	fleetOnly := r.authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDriver)

	// Health check endpoint
	e.GET("/health", r.healthHandler.Health)

	api := e.Group("/api")

	// Public seed snapshot
	api.GET("/demo-data", r.analyticsHandler.DemoData)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, authn)
	}

	// Trip reads are public; a valid token narrows the list to the caller's trips.
	tripsGroup := api.Group("/trips")
	{
		tripsGroup.GET("", r.tripHandler.ListTrips, r.authMiddleware.OptionalAuthenticate)
		tripsGroup.POST("/estimate", r.tripHandler.EstimateFare)
		tripsGroup.GET("/:id", r.tripHandler.GetTrip)
		tripsGroup.POST("", r.tripHandler.CreateTrip, authn)
		tripsGroup.PUT("/:id", r.tripHandler.UpdateTrip, authn)
		tripsGroup.DELETE("/:id", r.tripHandler.DeleteTrip, authn)
	}

	driversGroup := api.Group("/drivers")
	driversGroup.Use(authn)
	{
		driversGroup.GET("", r.driverHandler.ListDrivers)
		driversGroup.GET("/:id", r.driverHandler.GetDriver)
		driversGroup.POST("", r.driverHandler.CreateDriver, adminOnly)
		driversGroup.PUT("/:id", r.driverHandler.UpdateDriver, fleetOnly)
	}

	vehiclesGroup := api.Group("/vehicles")
	vehiclesGroup.Use(authn)
	{
		vehiclesGroup.GET("", r.vehicleHandler.ListVehicles)
		vehiclesGroup.GET("/:id", r.vehicleHandler.GetVehicle)
		vehiclesGroup.POST("", r.vehicleHandler.CreateVehicle, fleetOnly)
		vehiclesGroup.PUT("/:id", r.vehicleHandler.UpdateVehicle, fleetOnly)
	}

	paymentsGroup := api.Group("/payments")
	paymentsGroup.Use(authn)
	{
		paymentsGroup.GET("", r.paymentHandler.ListPayments)
		paymentsGroup.GET("/:id", r.paymentHandler.GetPayment)
		paymentsGroup.GET("/:id/qrcode", r.paymentHandler.GetReceiptQR)
		paymentsGroup.POST("", r.paymentHandler.CreatePayment)
		paymentsGroup.PUT("/:id", r.paymentHandler.UpdatePayment)
	}

	ratingsGroup := api.Group("/ratings")
	ratingsGroup.Use(authn)
	{
		ratingsGroup.POST("", r.ratingHandler.CreateRating)
		ratingsGroup.GET("", r.ratingHandler.ListRatings, adminOnly)
		ratingsGroup.GET("/driver/:id", r.ratingHandler.ListDriverRatings)
	}

	usersGroup := api.Group("/users")
	usersGroup.Use(authn)
	{
		usersGroup.GET("", r.userHandler.ListUsers, adminOnly)
		usersGroup.GET("/:id", r.userHandler.GetUser)
		usersGroup.PUT("/:id", r.userHandler.UpdateUser)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser, adminOnly)
	}

	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Use(authn)
	{
		analyticsGroup.GET("/overview", r.analyticsHandler.Overview)
		analyticsGroup.GET("/revenue", r.analyticsHandler.Revenue)
		analyticsGroup.GET("/trips", r.analyticsHandler.Trips)
	}
}
