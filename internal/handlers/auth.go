// auth.go — the admin gate's front door.
// POST /api/v1/auth exchanges the shared admin secret for a short-lived
// session token. There are no user accounts: whoever knows the secret is an
// admin, which matches how a club league is actually run.
package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/league-night/internal/config"
	"github.com/trentd187/league-night/internal/middleware"
)

// AuthRequest is the JSON body for POST /api/v1/auth.
type AuthRequest struct {
	Secret string `json:"secret"`
}

// Login returns a handler that verifies the shared secret and issues an admin
// session token.
func Login(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AuthRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if cfg.AdminSecret == "" ||
			subtle.ConstantTimeCompare([]byte(req.Secret), []byte(cfg.AdminSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid secret",
			})
		}

		token, err := middleware.IssueAdminToken(cfg)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue token",
			})
		}
		return c.JSON(fiber.Map{"token": token})
	}
}
