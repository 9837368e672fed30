// scoring.go — score entry, round submission, card moves, and admin
// adjustments for doubles and putting leagues.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

// ScoreRequest is the JSON body for PUT /api/v1/leagues/:id/scores.
// Row is the wire form of a row key ("team:<uuid>" or "cali:<uuid>").
type ScoreRequest struct {
	Row   string `json:"row"`
	Round int    `json:"round"`
	Value int    `json:"value"`
}

// SubmitRoundRequest is the JSON body for POST /api/v1/leagues/:id/cards/:cardID/submit.
type SubmitRoundRequest struct {
	Round int `json:"round"`
}

// MoveTeamRequest is the JSON body for POST /api/v1/leagues/:id/teams/:teamID/move.
type MoveTeamRequest struct {
	ToCardID uuid.UUID `json:"to_card_id"`
}

// AdjustmentRequest is the JSON body for the adjustment routes. Exactly one
// of Delta or DesiredFinal must be set: Delta stores the offset directly,
// DesiredFinal computes the offset that lands the row on the given final.
type AdjustmentRequest struct {
	Row          string `json:"row"`
	Delta        *int   `json:"delta,omitempty"`
	DesiredFinal *int   `json:"desired_final,omitempty"`
}

// RecordScore returns a handler for PUT /api/v1/leagues/:id/scores
// (admin only). Values outside the league type's range are clamped, never
// rejected — data entry stays forgiving.
func RecordScore(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		key, kerr := models.ParseRowKey(req.Row)
		if kerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid row key",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.RecordScore(state, key, req.Round, req.Value); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{
			"row":   key.String(),
			"round": req.Round,
			"value": state.Scores[key][req.Round], // post-clamp value
		})
	}
}

// SubmitRound returns a handler for POST /api/v1/leagues/:id/cards/:cardID/submit
// (admin only). Re-submitting a committed round succeeds without effect.
func SubmitRound(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		cardID, perr := uuid.Parse(c.Params("cardID"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid card id",
			})
		}
		var req SubmitRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.SubmitRound(state, cardID, req.Round); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{
			"card_id":                 cardID,
			"submitted_through_round": state.SubmittedThrough(cardID),
			"complete":                engine.Complete(state),
		})
	}
}

// MoveTeam returns a handler for POST /api/v1/leagues/:id/teams/:teamID/move
// (admin only). Card membership freezes once either card has submitted.
func MoveTeam(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		teamID, perr := uuid.Parse(c.Params("teamID"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid team id",
			})
		}
		var req MoveTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.MoveTeam(state, teamID, req.ToCardID); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{"cards": state.Cards})
	}
}

// SetAdjustment returns a handler for PUT /api/v1/leagues/:id/adjustments
// (admin only).
func SetAdjustment(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req AdjustmentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		key, kerr := models.ParseRowKey(req.Row)
		if kerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid row key",
			})
		}
		if (req.Delta == nil) == (req.DesiredFinal == nil) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "provide exactly one of delta or desired_final",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if req.Delta != nil {
			err = engine.SetAdjustment(state, key, *req.Delta)
		} else {
			err = engine.SetDesiredFinal(state, key, *req.DesiredFinal)
		}
		if err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{
			"row":        key.String(),
			"adjustment": state.Adjustments[key],
		})
	}
}

// ClearAdjustment returns a handler for
// DELETE /api/v1/leagues/:id/adjustments/:row (admin only). Clearing never
// touches the base score.
func ClearAdjustment(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		key, kerr := models.ParseRowKey(c.Params("row"))
		if kerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid row key",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.ClearAdjustment(state, key); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
