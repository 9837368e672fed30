// memory.go — an in-memory Store for tests and database-less development.
// Documents are deep-copied through JSON on both load and save so callers can
// never alias the stored state; that mirrors the serialize/deserialize
// boundary the Postgres store has naturally.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// MemoryStore implements Store on a mutex-guarded map.
type MemoryStore struct {
	mu      sync.RWMutex
	leagues map[uuid.UUID][]byte
	created map[uuid.UUID]time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		leagues: map[uuid.UUID][]byte{},
		created: map[uuid.UUID]time.Time{},
	}
}

// Load decodes a deep copy of the stored document and applies defaults once,
// matching the Postgres store's contract.
func (m *MemoryStore) Load(ctx context.Context, id uuid.UUID) (*models.LeagueState, error) {
	m.mu.RLock()
	doc, ok := m.leagues[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var state models.LeagueState
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, err
	}
	state.ApplyDefaults()
	return &state, nil
}

// Save replaces the stored document wholesale. Last write wins.
func (m *MemoryStore) Save(ctx context.Context, s *models.LeagueState) error {
	s.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.created[s.ID]; !ok {
		m.created[s.ID] = s.CreatedAt
	}
	m.leagues[s.ID] = doc
	return nil
}

// List returns summaries newest first.
func (m *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type item struct {
		sum Summary
		at  time.Time
	}
	items := make([]item, 0, len(m.leagues))
	for id, doc := range m.leagues {
		var state models.LeagueState
		if err := json.Unmarshal(doc, &state); err != nil {
			return nil, err
		}
		items = append(items, item{
			sum: Summary{ID: id, Name: state.Name, Type: state.Type, Stage: state.Stage},
			at:  m.created[id],
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].at.After(items[j].at) })

	out := make([]Summary, 0, len(items))
	for _, it := range items {
		out = append(out, it.sum)
	}
	return out, nil
}
