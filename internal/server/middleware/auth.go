package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/services"
)

// AuthRequired checks a JWT from Authorization: Bearer.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			return fiber.ErrUnauthorized
		}
		claims, err := services.ParseAdminToken(cfg, strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}
