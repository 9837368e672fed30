// postgres.go — the GORM-backed document store.
// Each league is one row in the leagues table with the full state serialized
// into a jsonb column. A couple of scalar columns (name, type, stage) are
// duplicated out of the document purely so listing doesn't have to decode
// every blob.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
	"gorm.io/gorm"
)

// LeagueRecord maps to the leagues table (created by migrations/, not
// AutoMigrate — the schema is owned by SQL files like the rest of the stack).
type LeagueRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"not null"`
	Stage     string    `gorm:"not null"`
	Document  []byte    `gorm:"type:jsonb;not null"` // The whole LeagueState as JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps GORM pointed at the table the migrations create.
func (LeagueRecord) TableName() string { return "leagues" }

// PostgresStore implements Store on a *gorm.DB.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgres wraps a GORM handle in a document store.
func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load fetches and decodes one league, applying the schema defaulting step
// exactly once before the state is handed to the engine.
func (p *PostgresStore) Load(ctx context.Context, id uuid.UUID) (*models.LeagueState, error) {
	var rec LeagueRecord
	err := p.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var state models.LeagueState
	if err := json.Unmarshal(rec.Document, &state); err != nil {
		return nil, err
	}
	state.ApplyDefaults()
	return &state, nil
}

// Save serializes the full document and upserts its row. Last write wins:
// concurrent admins are resolved here, not with engine-level locking.
func (p *PostgresStore) Save(ctx context.Context, s *models.LeagueState) error {
	s.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	rec := LeagueRecord{
		ID:        s.ID,
		Name:      s.Name,
		Type:      string(s.Type),
		Stage:     string(s.Stage),
		Document:  doc,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	return p.db.WithContext(ctx).Save(&rec).Error
}

// List returns league summaries from the scalar columns, newest first.
func (p *PostgresStore) List(ctx context.Context) ([]Summary, error) {
	var recs []LeagueRecord
	err := p.db.WithContext(ctx).
		Select("id", "name", "type", "stage").
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(recs))
	for _, r := range recs {
		out = append(out, Summary{
			ID:    r.ID,
			Name:  r.Name,
			Type:  models.LeagueType(r.Type),
			Stage: models.Stage(r.Stage),
		})
	}
	return out, nil
}
