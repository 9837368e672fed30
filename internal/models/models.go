// Package models defines the league state document and its supporting types.
// Unlike a classic table-per-entity schema, the whole league lives in one
// document: every mutation loads the full state, computes the full next state,
// and writes the whole thing back. That makes each operation atomic from the
// engine's point of view and keeps concurrent admins on a simple
// last-writer-wins footing (see internal/store).
//
// The data model represents a club competition night platform where:
//   - Players check in to a League (a single competition instance)
//   - "doubles" and "putting" leagues partition the roster into Teams and
//     PlayCards, then collect scores per card per round
//   - "tags" leagues track an integer ladder rank per player, redistributed
//     by round finishing order
//
// There is no separate "season" concept — a League IS one competition night.
// This keeps the hierarchy simple: League → Cards → Scores, or League → Ladder.
package models

import (
	"time"

	// uuid provides universally unique identifiers for entity IDs.
	// IDs are generated engine-side so a full next-state can be built in
	// memory before anything is written.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named
// string type plus constants. This gives us type safety while keeping the
// values human-readable inside the stored JSON document.

// LeagueType describes which kind of competition a league runs.
type LeagueType string

const (
	LeagueTypeTags    LeagueType = "tags"    // Ladder play: integer tag ranks redistributed by finishing order
	LeagueTypeDoubles LeagueType = "doubles" // 2-person teams on play-cards, score relative to par
	LeagueTypePutting LeagueType = "putting" // Formed cards submitting N sequential rounds of putting scores
)

// FormationMode controls how players are paired into teams.
type FormationMode string

const (
	FormationRandom FormationMode = "random" // Shuffle the whole pool, pair consecutively
	FormationSeated FormationMode = "seated" // Pair group A with group B one-to-one
)

// CaliMode controls how the floating participant is chosen for odd rosters.
// "Cali" is club slang for the one player who doesn't get a teammate and is
// attached to an existing card instead.
type CaliMode string

const (
	CaliAuto   CaliMode = "auto"   // Engine picks, constrained by the formation mode
	CaliManual CaliMode = "manual" // Admin supplies the player explicitly
)

// PoolMode controls whether check-in assigns players to an A/B pool.
type PoolMode string

const (
	PoolSplit    PoolMode = "split"    // Players carry an A or B group label
	PoolCombined PoolMode = "combined" // No grouping; everyone in one pool
)

// --- Models ---

// Player is one checked-in participant. Identity is immutable once created;
// uniqueness is enforced case-insensitively by name within a league.
type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Group string    `json:"group,omitempty"` // "A" or "B" in split pool mode, empty otherwise
}

// Team is a 2-person unit created only by formation. Membership never changes
// after creation — card-level moves shuffle whole teams, never players.
type Team struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	PlayerIDs [2]uuid.UUID `json:"player_ids"`
}

// PlayCard groups 2–3 teams (or a team plus the Cali) that play and submit
// scores together. StartSlot staggers where each card begins.
type PlayCard struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	TeamIDs      []uuid.UUID `json:"team_ids"`
	CaliPlayerID *uuid.UUID  `json:"cali_player_id,omitempty"`
	StartSlot    int         `json:"start_slot"`
}

// LadderScore is one player's declared result in a ladder round. Score is kept
// as the raw entered string: a non-numeric or empty value simply excludes the
// player from that round's swap rather than failing the round.
type LadderScore struct {
	PlayerID uuid.UUID `json:"player_id"`
	Score    string    `json:"score"`
}

// LadderRound is immutable once recorded. Slice order in LadderState.Rounds is
// chronological and doubles as the replay order.
type LadderRound struct {
	ID        uuid.UUID     `json:"id"`
	Scores    []LadderScore `json:"scores"`
	CreatedAt time.Time     `json:"created_at"`
}

// LadderEntry records the tag a player held when they joined the ladder.
// Current tags are always derived by replaying Rounds over these entries.
type LadderEntry struct {
	PlayerID uuid.UUID `json:"player_id"`
	Tag      int       `json:"tag"`
}

// LadderState is the tags-league portion of the document.
type LadderState struct {
	Entries []LadderEntry `json:"entries"`
	Rounds  []LadderRound `json:"rounds"`
}

// Config holds the settings fixed before the roster locks. All fields are
// immutable once the league advances past its first stage.
type Config struct {
	FormationMode FormationMode `json:"formation_mode"`
	CaliMode      CaliMode      `json:"cali_mode"`
	PoolMode      PoolMode      `json:"pool_mode"`
	TotalRounds   int           `json:"total_rounds"` // 1–5; doubles leagues always use 1
}

// LeagueState is the whole document for one league instance. The engine owns
// every field; handlers and the store never mutate it directly.
type LeagueState struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Type          LeagueType `json:"type"`
	SchemaVersion int        `json:"schema_version"`
	Stage         Stage      `json:"stage"`
	Config        Config     `json:"config"`

	Players []Player    `json:"players"`
	Ladder  LadderState `json:"ladder"`

	Teams []Team     `json:"teams"`
	Cards []PlayCard `json:"cards"`

	// Scores maps a leaderboard row to its per-round values (round number →
	// score). Values are clamped to the league type's range on entry.
	Scores map[RowKey]map[int]int `json:"scores"`

	// Adjustments are admin-entered offsets with a lifecycle independent of
	// the base scores: one can exist without the other.
	Adjustments map[RowKey]int `json:"adjustments"`

	// Submitted tracks each card's watermark: the highest round number whose
	// scores have been committed. Starts at 0, increments by exactly 1.
	Submitted map[uuid.UUID]int `json:"submitted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerByID returns the checked-in player with the given id, or nil.
func (s *LeagueState) PlayerByID(id uuid.UUID) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// TeamByID returns the team with the given id, or nil.
func (s *LeagueState) TeamByID(id uuid.UUID) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// CardByID returns the play-card with the given id, or nil.
func (s *LeagueState) CardByID(id uuid.UUID) *PlayCard {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i]
		}
	}
	return nil
}

// CardForRow returns the card a leaderboard row belongs to, or nil if the row
// is not placed on any card.
func (s *LeagueState) CardForRow(key RowKey) *PlayCard {
	for i := range s.Cards {
		card := &s.Cards[i]
		switch key.Kind {
		case RowTeam:
			for _, tid := range card.TeamIDs {
				if tid == key.ID {
					return card
				}
			}
		case RowCali:
			if card.CaliPlayerID != nil && *card.CaliPlayerID == key.ID {
				return card
			}
		}
	}
	return nil
}

// SubmittedThrough returns the card's watermark (0 if nothing committed yet).
func (s *LeagueState) SubmittedThrough(cardID uuid.UUID) int {
	return s.Submitted[cardID]
}
