// Package handlers contains the HTTP route handler functions for the League
// Night API. Each handler corresponds to one endpoint and follows the same
// shape: parse the request, load the league document, call into the engine,
// save the whole document back, and broadcast fresh standings to any live
// viewers.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// Intentionally lightweight — no database queries, no authentication. Used by
// container probes and load balancers to decide whether to send traffic here.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
