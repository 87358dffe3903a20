package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/config"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/handler"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/middleware"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	ActivityHandler     *handler.ActivityHandler
	UserHandler         *handler.UserHandler
	ClassHandler        *handler.ClassHandler
	AnnouncementHandler *handler.AnnouncementHandler
	DashboardHandler    *handler.DashboardHandler
	UploadHandler       *handler.UploadHandler
	AuditHandler        *handler.AuditHandler
	JWTMiddleware       fiber.Handler
	LoginRateLimit      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api.Group("/auth"), deps.LoginRateLimit)
		deps.AuthHandler.RegisterProtected(api.Group("/auth", jwtMiddleware), adminOnly)
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activities", jwtMiddleware), staffOnly)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", jwtMiddleware, staffOnly), adminOnly)
	}

	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api.Group("/classes", jwtMiddleware), adminOnly)
	}

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements", jwtMiddleware), staffOnly)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api.Group("/uploads", jwtMiddleware))
	}

	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/logs", jwtMiddleware, adminOnly))
	}
}
