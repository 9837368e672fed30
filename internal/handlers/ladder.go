// ladder.go — tags-league routes: recording ladder rounds and previewing the
// swaps a round would cause before committing it.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

// LadderScoreInput is one player's score as entered. Score arrives as a raw
// string: non-numeric entries don't fail the round, they just exclude that
// player from the swap.
type LadderScoreInput struct {
	PlayerID uuid.UUID `json:"player_id"`
	Score    string    `json:"score"`
}

// LadderRoundRequest is the JSON body for the ladder round and preview routes.
type LadderRoundRequest struct {
	Scores []LadderScoreInput `json:"scores"`
}

func (r LadderRoundRequest) toModel() []models.LadderScore {
	out := make([]models.LadderScore, 0, len(r.Scores))
	for _, s := range r.Scores {
		out = append(out, models.LadderScore{PlayerID: s.PlayerID, Score: s.Score})
	}
	return out
}

// RecordLadderRound returns a handler for POST /api/v1/leagues/:id/ladder/rounds
// (admin only). The round is appended to history and the replayed standings
// are returned and broadcast.
func RecordLadderRound(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req LadderRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		round, err := engine.RecordLadderRound(state, req.toModel())
		if err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"round_id":  round.ID,
			"standings": engine.Standings(state),
		})
	}
}

// PreviewLadderRound returns a handler for POST /api/v1/leagues/:id/ladder/preview
// (admin only). Nothing is stored; the response shows the ladder as it would
// look if the round were recorded.
func PreviewLadderRound(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req LadderRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"standings": engine.PreviewRound(state, req.toModel()),
		})
	}
}
