package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/server/handlers"
	"github.com/hpfxd/bibliothek/internal/server/middleware"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config) {
	handlers.Setup(cfg)

	v2 := app.Group("/v2")
	v2.Get("/projects", handlers.ProjectList)
	v2.Get("/projects/:project", handlers.ProjectDetail)

	// Literal "latest" routes are registered before the numeric ones so
	// the alias wins during matching.
	v2.Get("/projects/:project/versions/:version/builds/latest", handlers.BuildLatest)
	v2.Get("/projects/:project/versions/:version/builds/latest/downloads/:download", handlers.DownloadLatest)
	v2.Get("/projects/:project/versions/:version/builds/:build", handlers.BuildSpecific)
	v2.Get("/projects/:project/versions/:version/builds/:build/downloads/:download", handlers.DownloadSpecific)

	v2.Post("/projects/:project/versions/:version/webhook",
		middleware.VerifySignature(cfg), handlers.Webhook)

	admin := app.Group("/admin")
	admin.Post("/login", handlers.AdminLogin)
	admin.Post("/projects", middleware.AuthRequired(cfg), handlers.ProjectCreate)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "time": time.Now()})
	})
}
