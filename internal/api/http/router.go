package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freelance-directory/internal/api/http/handlers"
	"github.com/spec-kit/freelance-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Directory      *handlers.DirectoryHandler
	Likes          *handlers.LikesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	accounts := app.Group("/accounts")
	accounts.Post("/signup", cfg.Accounts.SignUp)
	accounts.Get("/activate/:token", cfg.Accounts.Activate)
	accounts.Post("/login", cfg.Accounts.Login)
	accounts.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Accounts.Logout)
	accounts.Post("/password/reset", cfg.Accounts.RequestPasswordReset)
	accounts.Post("/password/reset/:token", cfg.Accounts.ConfirmPasswordReset)

	ownerOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireSelfOrSuperuser("id")}
	accounts.Get("/:id", append(ownerOnly, cfg.Accounts.GetAccount)...)
	accounts.Patch("/:id", append(ownerOnly, cfg.Accounts.UpdateAccount)...)

	users := app.Group("/users")
	users.Get("", cfg.Directory.Index)
	users.Get("/search", cfg.Directory.Search)
	users.Get("/:id", cfg.Directory.Profile)
	users.Get("/:id/like", cfg.Likes.Like)

	app.Post("/api/users/:id/like", cfg.Likes.LikeAPI)
}
