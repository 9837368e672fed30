// leagues.go — league lifecycle routes: listing, creation, detail, stage
// advancement, and the whole-mode reset.
//
// Every mutating handler follows the engine's atomicity contract: load the
// full document, let the engine compute the full next state, save the whole
// document. Nothing partial is ever written.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

// CreateLeagueRequest is the JSON body for POST /api/v1/leagues.
type CreateLeagueRequest struct {
	Name   string         `json:"name"`
	Type   string         `json:"type"`             // "tags", "doubles", or "putting"
	Config *models.Config `json:"config,omitempty"` // optional; defaults applied when omitted
}

// LeagueResponse is the detail view: the raw document plus the derived
// standings, which are never stored.
type LeagueResponse struct {
	League    *models.LeagueState `json:"league"`
	Standings fiber.Map           `json:"standings"`
	Stages    []models.Stage      `json:"stages"` // the league type's full stage sequence, for UI display
}

// ListLeagues returns a handler for GET /api/v1/leagues.
func ListLeagues(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sums, err := st.List(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sums)
	}
}

// CreateLeague returns a handler for POST /api/v1/leagues (admin only).
func CreateLeague(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateLeagueRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		switch models.LeagueType(req.Type) {
		case models.LeagueTypeTags, models.LeagueTypeDoubles, models.LeagueTypePutting:
			// valid
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "type must be 'tags', 'doubles', or 'putting'",
			})
		}

		now := time.Now().UTC()
		state := &models.LeagueState{
			ID:        uuid.New(),
			Name:      req.Name,
			Type:      models.LeagueType(req.Type),
			Stage:     models.StageUnlocked,
			CreatedAt: now,
			UpdatedAt: now,
		}
		state.ApplyDefaults()
		if req.Config != nil {
			if err := engine.SetConfig(state, *req.Config); err != nil {
				return respondError(c, err)
			}
		}

		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(LeagueResponse{
			League:    state,
			Standings: standingsPayload(state),
			Stages:    models.StageSequence(state.Type),
		})
	}
}

// GetLeague returns a handler for GET /api/v1/leagues/:id.
func GetLeague(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(LeagueResponse{
			League:    state,
			Standings: standingsPayload(state),
			Stages:    models.StageSequence(state.Type),
		})
	}
}

// GetStandings returns a handler for GET /api/v1/leagues/:id/standings.
// Public: leaderboard viewers never authenticate.
func GetStandings(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(standingsPayload(state))
	}
}

// AdvanceStage returns a handler for POST /api/v1/leagues/:id/advance
// (admin only). The engine enforces the forward-only stage sequence and the
// completion gate on finalize.
func AdvanceStage(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		if err := engine.AdvanceStage(state); err != nil {
			return respondError(c, err)
		}
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{"stage": state.Stage})
	}
}

// ResetLeague returns a handler for POST /api/v1/leagues/:id/reset
// (admin only). Wipes all derived state and reopens the league; the roster
// survives.
func ResetLeague(st store.Store, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLeagueID(c)
		if err != nil {
			return err
		}
		state, err := st.Load(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		engine.Reset(state)
		if err := st.Save(c.Context(), state); err != nil {
			return respondError(c, err)
		}
		broadcastStandings(hub, state)
		return c.JSON(fiber.Map{"stage": state.Stage})
	}
}
