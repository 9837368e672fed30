// roster.go — check-in, player removal, configuration, and team formation.
package handlers

import (
	"math/rand"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

// CheckInRequest is the JSON body for POST /api/v1/leagues/:id/players.
type CheckInRequest struct {
	Name  string `json:"name"`
	Group string `json:"group,omitempty"` // "A" or "B"; required in split pool mode
}

// FormationRequest is the JSON body for POST /api/v1/leagues/:id/formation.
// Seed pins the shuffle for reproducible formations; CaliPlayerID names the
// floating participant in manual cali mode.
type FormationRequest struct {
	CaliPlayerID *uuid.UUID `json:"cali_player_id,omitempty"`
	Seed         *int64     `json:"seed,omitempty"`
}

// CheckInPlayer returns a handler for POST /api/v1/leagues/:id/players
// (admin only).
func CheckInPlayer(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req CheckInRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		player, err := engine.CheckIn(state, req.Name, req.Group)
		if err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.Status(fiber.StatusCreated).JSON(player)
	}
}

// RemovePlayer returns a handler for DELETE /api/v1/leagues/:id/players/:playerID
// (admin only).
func RemovePlayer(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		playerID, perr := uuid.Parse(c.Params("playerID"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player id",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.RemovePlayer(state, playerID); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UpdateConfig returns a handler for PUT /api/v1/leagues/:id/config
// (admin only). Rejected once the configuration locks.
func UpdateConfig(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var cfg models.Config
		if err := c.BodyParser(&cfg); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.SetConfig(state, cfg); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		return c.JSON(state.Config)
	}
}

// GenerateFormation returns a handler for POST /api/v1/leagues/:id/formation
// (admin only). Formation is all-or-nothing: on any failure the stored
// document is untouched and the response carries the named reason.
func GenerateFormation(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		var req FormationRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid request body",
				})
			}
		}

		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}

		rng := newFormationRand(req.Seed)
		if err := engine.GenerateFormation(state, rng, req.CaliPlayerID); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"teams": state.Teams,
			"cards": state.Cards,
		})
	}
}

// newFormationRand builds the formation's random source: seeded when the
// request pins one, time-seeded otherwise.
func newFormationRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
