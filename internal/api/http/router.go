package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/http/handlers"
	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reservations   *handlers.ReservationHandler
	Payments       *handlers.PaymentHandler
	Quotes         *handlers.QuoteHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)
	protected.Get("/auth/me", cfg.Auth.Me)

	// reservation creation stays open to guests: it is the promotion trigger
	protected.Post("/reservations", cfg.Reservations.Create)
	protected.Get("/reservations", cfg.Reservations.List)
	protected.Get("/reservations/:id", cfg.Reservations.Get)
	protected.Post("/reservations/:id/cancel", cfg.Reservations.Cancel)
	protected.Get("/reservations/:id/payments", cfg.Payments.ListForReservation)

	protected.Post("/payments", cfg.Payments.Create)
	protected.Post("/payments/:id/complete", cfg.Payments.Complete)

	managers := protected.Group("/quotes", auth.RequireRole(domain.RoleManager, domain.RoleAdmin))
	managers.Post("", cfg.Quotes.Create)
	managers.Get("/:id", cfg.Quotes.Get)
}
