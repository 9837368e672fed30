package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trentd187/league-night/internal/config"
	"github.com/trentd187/league-night/internal/engine"
	"github.com/trentd187/league-night/internal/middleware"
	"github.com/trentd187/league-night/internal/models"
	"github.com/trentd187/league-night/internal/store"
)

const testSecret = "test-secret"

// newTestApp wires the full route table against an in-memory store, matching
// the server's layout minus the websocket endpoints.
func newTestApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	cfg := &config.Config{Port: "0", AdminSecret: testSecret, Env: "development"}
	st := store.NewMemory()

	app := fiber.New()
	app.Get("/health", HealthCheck)

	api := app.Group("/api/v1")
	api.Post("/auth", Login(cfg))
	api.Get("/leagues", ListLeagues(st))
	api.Get("/leagues/:id", GetLeague(st))
	api.Get("/leagues/:id/standings", GetStandings(st))

	admin := api.Group("", middleware.RequireAdmin(cfg))
	admin.Post("/leagues", CreateLeague(st))
	admin.Put("/leagues/:id/config", UpdateConfig(st))
	admin.Post("/leagues/:id/advance", AdvanceStage(st, nil))
	admin.Post("/leagues/:id/reset", ResetLeague(st, nil))
	admin.Post("/leagues/:id/players", CheckInPlayer(st, nil))
	admin.Delete("/leagues/:id/players/:playerID", RemovePlayer(st, nil))
	admin.Post("/leagues/:id/formation", GenerateFormation(st, nil))
	admin.Put("/leagues/:id/scores", RecordScore(st, nil))
	admin.Post("/leagues/:id/cards/:cardID/submit", SubmitRound(st, nil))
	admin.Post("/leagues/:id/teams/:teamID/move", MoveTeam(st, nil))
	admin.Put("/leagues/:id/adjustments", SetAdjustment(st, nil))
	admin.Delete("/leagues/:id/adjustments/:row", ClearAdjustment(st, nil))
	admin.Post("/leagues/:id/ladder/rounds", RecordLadderRound(st, nil))
	admin.Post("/leagues/:id/ladder/preview", PreviewLadderRound(st))

	return app, st
}

// doJSON fires one request and returns the response. An empty token leaves the
// Authorization header off.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, into), "body: %s", raw)
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/auth", "", fiber.Map{"secret": testSecret})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, "POST", "/api/v1/auth", "", fiber.Map{"secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/leagues", "",
		fiber.Map{"name": "no token", "type": "tags"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/leagues", "not-a-jwt",
		fiber.Map{"name": "bad token", "type": "tags"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateLeagueValidation(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, "POST", "/api/v1/leagues", token, fiber.Map{"type": "tags"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/leagues", token,
		fiber.Map{"name": "bowling", "type": "bowling"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLeagueNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, "GET", "/api/v1/leagues/00000000-0000-0000-0000-000000000001", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/leagues/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDoublesNightEndToEnd(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	// Create a doubles league.
	resp := doJSON(t, app, "POST", "/api/v1/leagues", token,
		fiber.Map{"name": "tuesday doubles", "type": "doubles"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created LeagueResponse
	decode(t, resp, &created)
	leagueID := created.League.ID.String()
	base := "/api/v1/leagues/" + leagueID

	// Forming teams before the roster locks is a conflict.
	resp = doJSON(t, app, "POST", base+"/formation", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Check in five players.
	for i := 1; i <= 5; i++ {
		resp = doJSON(t, app, "POST", base+"/players", token,
			fiber.Map{"name": fmt.Sprintf("Player %d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Advance through format_locked to check_in_locked.
	for _, want := range []models.Stage{models.StageFormatLocked, models.StageCheckInLocked} {
		resp = doJSON(t, app, "POST", base+"/advance", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var stage struct {
			Stage models.Stage `json:"stage"`
		}
		decode(t, resp, &stage)
		assert.Equal(t, want, stage.Stage)
	}

	// Form teams with a pinned seed.
	resp = doJSON(t, app, "POST", base+"/formation", token, fiber.Map{"seed": 7})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var detail LeagueResponse
	resp = doJSON(t, app, "GET", base, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &detail)
	require.Len(t, detail.League.Cards, 1)
	card := detail.League.Cards[0]
	require.NotNil(t, card.CaliPlayerID)

	// Score every row; an out-of-range value comes back clamped.
	rows := engine.CardRows(&card)
	for i, key := range rows {
		value := i - 1
		if i == 0 {
			value = -100
		}
		resp = doJSON(t, app, "PUT", base+"/scores", token,
			fiber.Map{"row": key.String(), "round": 1, "value": value})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		if i == 0 {
			var scored struct {
				Value int `json:"value"`
			}
			decode(t, resp, &scored)
			assert.Equal(t, -18, scored.Value)
		}
	}

	// Submit the round; doubles plays exactly one, so the league completes.
	resp = doJSON(t, app, "POST", base+"/cards/"+card.ID.String()+"/submit", token,
		fiber.Map{"round": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var submitted struct {
		SubmittedThroughRound int  `json:"submitted_through_round"`
		Complete              bool `json:"complete"`
	}
	decode(t, resp, &submitted)
	assert.Equal(t, 1, submitted.SubmittedThroughRound)
	assert.True(t, submitted.Complete)

	// Public standings carry ranked rows.
	resp = doJSON(t, app, "GET", base+"/standings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var standings struct {
		Standings []engine.LeaderboardRow `json:"standings"`
		Complete  bool                    `json:"complete"`
	}
	decode(t, resp, &standings)
	assert.True(t, standings.Complete)
	require.Len(t, standings.Standings, len(rows))
	assert.Equal(t, 1, standings.Standings[0].Rank)

	// Finalize, then confirm the league is read-only.
	resp = doJSON(t, app, "POST", base+"/advance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, "PUT", base+"/scores", token,
		fiber.Map{"row": rows[0].String(), "round": 1, "value": 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTagsLadderRoundsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, "POST", "/api/v1/leagues", token,
		fiber.Map{"name": "tag night", "type": "tags"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created LeagueResponse
	decode(t, resp, &created)
	base := "/api/v1/leagues/" + created.League.ID.String()

	players := map[string]string{}
	for _, name := range []string{"P1", "P2", "P3"} {
		resp = doJSON(t, app, "POST", base+"/players", token, fiber.Map{"name": name})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var p models.Player
		decode(t, resp, &p)
		players[name] = p.ID.String()
	}

	scores := []fiber.Map{
		{"player_id": players["P1"], "score": "5"},
		{"player_id": players["P2"], "score": "3"},
		{"player_id": players["P3"], "score": "4"},
	}

	// Preview does not persist.
	resp = doJSON(t, app, "POST", base+"/ladder/preview", token, fiber.Map{"scores": scores})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, "GET", base, "", nil)
	var detail LeagueResponse
	decode(t, resp, &detail)
	assert.Empty(t, detail.League.Ladder.Rounds)

	// Recording does.
	resp = doJSON(t, app, "POST", base+"/ladder/rounds", token, fiber.Map{"scores": scores})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recorded struct {
		Standings []engine.Standing `json:"standings"`
	}
	decode(t, resp, &recorded)
	require.Len(t, recorded.Standings, 3)
	assert.Equal(t, 1, recorded.Standings[0].Tag)
	assert.Equal(t, players["P2"], recorded.Standings[0].PlayerID.String())
}

func TestAdjustmentRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, "POST", "/api/v1/leagues", token,
		fiber.Map{"name": "putting night", "type": "putting"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created LeagueResponse
	decode(t, resp, &created)
	base := "/api/v1/leagues/" + created.League.ID.String()

	for i := 1; i <= 4; i++ {
		resp = doJSON(t, app, "POST", base+"/players", token,
			fiber.Map{"name": fmt.Sprintf("Putter %d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", base+"/advance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, "POST", base+"/formation", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var detail LeagueResponse
	resp = doJSON(t, app, "GET", base, "", nil)
	decode(t, resp, &detail)
	row := engine.CardRows(&detail.League.Cards[0])[0].String()

	// Both delta and desired_final is a bad request.
	resp = doJSON(t, app, "PUT", base+"/adjustments", token,
		fiber.Map{"row": row, "delta": 2, "desired_final": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "PUT", base+"/adjustments", token,
		fiber.Map{"row": row, "delta": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjusted struct {
		Adjustment int `json:"adjustment"`
	}
	decode(t, resp, &adjusted)
	assert.Equal(t, 2, adjusted.Adjustment)

	resp = doJSON(t, app, "DELETE", base+"/adjustments/"+row, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
