// cmd/server/main.go
// Entry point for the League Night API server. The cmd/ folder holds
// executable binaries; internal/ holds the packages they wire together.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	// cors allows the web front end to call the API from a different origin.
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout.
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/trentd187/league-night/internal/config"
	"github.com/trentd187/league-night/internal/database"
	"github.com/trentd187/league-night/internal/handlers"
	"github.com/trentd187/league-night/internal/middleware"
	"github.com/trentd187/league-night/internal/store"
	"github.com/trentd187/league-night/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env).
	cfg := config.Load()
	if cfg.AdminSecret == "" {
		log.Fatal("ADMIN_SECRET must be set; every mutating route is gated on it")
	}

	// Pick the document store. With a DATABASE_URL the leagues live in
	// Postgres; without one (local development) they live in memory and
	// vanish on restart.
	var st store.Store
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		st = store.NewPostgres(db)
	} else {
		log.Println("DATABASE_URL not set; using in-memory store (state is not persisted)")
		st = store.NewMemory()
	}

	// The hub fans standings updates out to live leaderboard viewers.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "League Night API",
	})

	// --- Global middleware ---
	app.Use(logger.New())
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api/v1")
	api.Post("/auth", handlers.Login(cfg))
	api.Get("/leagues", handlers.ListLeagues(st))
	api.Get("/leagues/:id", handlers.GetLeague(st))
	api.Get("/leagues/:id/standings", handlers.GetStandings(st))

	// Live standings: upgrade-gated websocket per league.
	app.Use("/ws/leagues/:id", handlers.WebsocketUpgrade)
	app.Get("/ws/leagues/:id", handlers.WatchLeague(hub))

	// --- Admin routes ---
	// Every mutation goes through the shared-secret gate. The engine assumes
	// authorization already passed by the time it runs.
	admin := api.Group("", middleware.RequireAdmin(cfg))
	admin.Post("/leagues", handlers.CreateLeague(st))
	admin.Put("/leagues/:id/config", handlers.UpdateConfig(st))
	admin.Post("/leagues/:id/advance", handlers.AdvanceStage(st, hub))
	admin.Post("/leagues/:id/reset", handlers.ResetLeague(st, hub))

	admin.Post("/leagues/:id/players", handlers.CheckInPlayer(st, hub))
	admin.Delete("/leagues/:id/players/:playerID", handlers.RemovePlayer(st, hub))
	admin.Post("/leagues/:id/formation", handlers.GenerateFormation(st, hub))

	admin.Put("/leagues/:id/scores", handlers.RecordScore(st, hub))
	admin.Post("/leagues/:id/cards/:cardID/submit", handlers.SubmitRound(st, hub))
	admin.Post("/leagues/:id/teams/:teamID/move", handlers.MoveTeam(st, hub))
	admin.Put("/leagues/:id/adjustments", handlers.SetAdjustment(st, hub))
	admin.Delete("/leagues/:id/adjustments/:row", handlers.ClearAdjustment(st, hub))

	admin.Post("/leagues/:id/ladder/rounds", handlers.RecordLadderRound(st, hub))
	admin.Post("/leagues/:id/ladder/preview", handlers.PreviewLadderRound(st))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
