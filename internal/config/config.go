// Package config handles loading and validating runtime configuration for the
// League Night API. Configuration values (like the database URL and the admin
// secret) are read from environment variables rather than being hardcoded, so
// the same binary can run in dev, staging, and production — just swap the
// environment variables.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the
	// process environment. Convenient in development; in production, real
	// env vars are used instead.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string // The TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL string // PostgreSQL connection string; empty selects the in-memory store
	AdminSecret string // Shared secret admins exchange for a session token
	Env         string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. A missing .env file is fine — production sets real env vars.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AdminSecret: os.Getenv("ADMIN_SECRET"), // Required: every stage transition goes through it
		Env:         env,
	}
}
