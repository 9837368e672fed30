// Package store persists league documents. The engine treats every operation
// as load → validate → compute → save-whole-document, so the store's contract
// is deliberately tiny: read a full document, write a full document. Writes
// are last-writer-wins; the engine's stage flags are cooperative locks, not
// mutexes, and the store adds no locking of its own.
//
// Two implementations ship: Postgres (the league JSON in a jsonb column via
// GORM) and an in-memory map used by tests and DATABASE_URL-less dev runs.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// ErrNotFound is returned when no league exists with the requested id.
var ErrNotFound = errors.New("league not found")

// Summary is the listing view of a league: enough for an index page without
// decoding the whole document.
type Summary struct {
	ID    uuid.UUID         `json:"id"`
	Name  string            `json:"name"`
	Type  models.LeagueType `json:"type"`
	Stage models.Stage      `json:"stage"`
}

// Store is the document store consumed by the HTTP layer.
type Store interface {
	// Load returns the full league document. Implementations run the
	// one-shot defaulting/migration step (ApplyDefaults) before returning,
	// so callers never see a partially-shaped state.
	Load(ctx context.Context, id uuid.UUID) (*models.LeagueState, error)

	// Save writes the whole document back, replacing whatever was there.
	Save(ctx context.Context, s *models.LeagueState) error

	// List returns summaries of every league, newest first.
	List(ctx context.Context) ([]Summary, error)
}
