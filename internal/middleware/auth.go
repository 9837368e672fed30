// Package middleware contains HTTP middleware for the League Night API.
// Middleware sits between the HTTP server and route handlers — it runs on
// every request that passes through it, making it the right place for
// cross-cutting concerns like the admin gate.
//
// The auth model is deliberately simple: leaderboards are public, and every
// mutating action is gated by one shared admin secret. An admin posts the
// secret once (POST /api/v1/auth) and receives a short-lived HS256 JWT; this
// middleware verifies that token on destructive routes. The engine itself
// never checks authorization — it assumes the gate already passed.
package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/trentd187/league-night/internal/config"
)

// adminTokenTTL bounds how long an issued admin session lasts.
const adminTokenTTL = 12 * time.Hour

// Claims is the payload of an admin session token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // always "admin"; present so future roles don't need a new token shape
}

// IssueAdminToken signs a fresh admin session token with the shared secret.
// Called by the auth handler after the submitted secret matched.
func IssueAdminToken(cfg *config.Config) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.AdminSecret))
}

// RequireAdmin returns a middleware handler that verifies the
// "Authorization: Bearer <token>" header carries a valid admin session token.
// Mutating routes mount this; read-only routes stay public.
func RequireAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			// Pin the algorithm: accepting whatever the token header claims
			// would let a forged token downgrade to "none".
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.AdminSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}
		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
			})
		}

		return c.Next()
	}
}
