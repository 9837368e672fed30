// roster.go — check-in and roster maintenance.
// Check-in is the only way players enter a league. For tags leagues it also
// hands out the next ladder tag, which is what keeps the tag set a clean
// 1..N permutation: tags are only ever created here, one at a time.
package engine

import (
	"strings"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// CheckIn adds a player to the roster. Names are unique case-insensitively
// within the league; the group label is required in split pool mode and must
// be empty otherwise. In a tags league the new player receives tag N+1.
func CheckIn(s *models.LeagueState, name, group string) (*models.Player, error) {
	if s.RosterLocked() {
		return nil, preconditionf("check-in is locked; no players can be added")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, preconditionf("player name is required")
	}
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, preconditionf("a player named %q is already checked in", p.Name)
		}
	}

	group = strings.ToUpper(strings.TrimSpace(group))
	switch s.Config.PoolMode {
	case models.PoolSplit:
		if group != "A" && group != "B" {
			return nil, preconditionf("pool is split; group must be A or B")
		}
	default:
		if group != "" {
			return nil, preconditionf("pool is combined; group labels are not accepted")
		}
	}

	player := models.Player{ID: uuid.New(), Name: name, Group: group}
	s.Players = append(s.Players, player)

	if s.Type == models.LeagueTypeTags {
		s.Ladder.Entries = append(s.Ladder.Entries, models.LadderEntry{
			PlayerID: player.ID,
			Tag:      len(s.Ladder.Entries) + 1,
		})
	}

	return &s.Players[len(s.Players)-1], nil
}

// RemovePlayer takes a player off the roster before it locks. In a tags
// league the departing player's tag is released and every higher tag shifts
// down by one, preserving the 1..N permutation.
func RemovePlayer(s *models.LeagueState, playerID uuid.UUID) error {
	if s.RosterLocked() {
		return preconditionf("check-in is locked; no players can be removed")
	}

	idx := -1
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return preconditionf("player is not checked in")
	}
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)

	if s.Type == models.LeagueTypeTags {
		released := 0
		entries := s.Ladder.Entries[:0]
		for _, e := range s.Ladder.Entries {
			if e.PlayerID == playerID {
				released = e.Tag
				continue
			}
			entries = append(entries, e)
		}
		for i := range entries {
			if released > 0 && entries[i].Tag > released {
				entries[i].Tag--
			}
		}
		s.Ladder.Entries = entries
	}

	return nil
}

// SetConfig replaces the pre-play configuration. Rejected once the config
// locks; values are validated rather than clamped here because this is an
// admin setup action, not data entry.
func SetConfig(s *models.LeagueState, cfg models.Config) error {
	if s.ConfigLocked() {
		return preconditionf("configuration is locked for this league")
	}
	switch cfg.FormationMode {
	case models.FormationRandom, models.FormationSeated:
	default:
		return preconditionf("formation_mode must be random or seated")
	}
	switch cfg.CaliMode {
	case models.CaliAuto, models.CaliManual:
	default:
		return preconditionf("cali_mode must be auto or manual")
	}
	switch cfg.PoolMode {
	case models.PoolSplit, models.PoolCombined:
	default:
		return preconditionf("pool_mode must be split or combined")
	}
	if cfg.TotalRounds < models.MinTotalRounds || cfg.TotalRounds > models.MaxTotalRounds {
		return preconditionf("total_rounds must be between %d and %d",
			models.MinTotalRounds, models.MaxTotalRounds)
	}
	if s.Type == models.LeagueTypeDoubles {
		cfg.TotalRounds = 1
	}
	if cfg.PoolMode != s.Config.PoolMode && len(s.Players) > 0 {
		return preconditionf("pool_mode cannot change after players have checked in")
	}
	s.Config = cfg
	return nil
}
