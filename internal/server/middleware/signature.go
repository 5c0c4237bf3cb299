package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/config"
)

// VerifySignature validates the GitHub webhook HMAC signature
// (X-Hub-Signature-256: sha256=<hex>) over the raw request body.
// Verification is skipped when no secret is configured.
func VerifySignature(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.WebhookSecret == "" {
			return c.Next()
		}
		header := c.Get("X-Hub-Signature-256")
		if !strings.HasPrefix(header, "sha256=") {
			return fiber.ErrUnauthorized
		}
		got, err := hex.DecodeString(strings.TrimPrefix(header, "sha256="))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		mac := hmac.New(sha256.New, []byte(cfg.WebhookSecret))
		mac.Write(c.Body())
		if !hmac.Equal(got, mac.Sum(nil)) {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
