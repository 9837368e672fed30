// helpers.go — request plumbing shared by every league handler.
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

// parseLeagueID reads and validates the :id route parameter.
func parseLeagueID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid league id",
		})
	}
	return id, nil
}

// respondError translates store and engine failures into HTTP responses.
// Precondition violations are conflicts with the league's current state
// (409); structural infeasibility means the inputs can never satisfy the
// constraints (422); anything else is a server fault.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "league not found",
		})
	}
	switch engine.KindOf(err) {
	case engine.KindPrecondition:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case engine.KindInfeasible:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}

// standingsPayload builds the standings view for any league type: the ladder
// for tags leagues, the ranked leaderboard for doubles and putting.
func standingsPayload(s *models.LeagueState) fiber.Map {
	if s.Type == models.LeagueTypeTags {
		return fiber.Map{
			"league_id": s.ID,
			"type":      s.Type,
			"standings": engine.Standings(s),
		}
	}
	return fiber.Map{
		"league_id": s.ID,
		"type":      s.Type,
		"standings": engine.Leaderboard(s),
		"complete":  engine.Complete(s),
	}
}

// broadcastStandings pushes the current standings to every live viewer of the
// league. Failures to marshal are impossible for our own types, so the error
// is discarded rather than failing the triggering request.
func broadcastStandings(hub *websocket.Hub, s *models.LeagueState) {
	if hub == nil {
		return
	}
	data, err := json.Marshal(standingsPayload(s))
	if err != nil {
		return
	}
	hub.BroadcastToLeague(s.ID.String(), data)
}
