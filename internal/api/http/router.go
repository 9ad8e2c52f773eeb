package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/datachat-gateway/internal/api/http/handlers"
	"github.com/spec-kit/datachat-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Chat           *handlers.ChatHandler
	Analysis       *handlers.AnalysisHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The user routes are public; chat and
// analysis sit behind the bearer-token middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	userGroup := api.Group("/user")
	userGroup.Post("/signup", cfg.Users.Signup)
	userGroup.Post("/signin", cfg.Users.Signin)
	userGroup.Post("/authenticate", cfg.Users.Authenticate)

	chatGroup := api.Group("/chat", cfg.AuthMiddleware.Handle)
	chatGroup.Post("/create", cfg.Chat.Create)
	chatGroup.Post("/message", cfg.Chat.Message)
	chatGroup.Get("/", cfg.Chat.List)

	analysisGroup := api.Group("/analysis", cfg.AuthMiddleware.Handle)
	analysisGroup.Post("/:op", cfg.Analysis.Forward)
}
