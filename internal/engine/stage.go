// stage.go — forward-only stage transitions and the whole-mode reset.
package engine

import (
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// AdvanceStage moves the league to the next stage in its sequence. Skipping
// and going backward are impossible by construction; the transition into the
// terminal stage additionally requires every card to have submitted every
// round. Advancing an already-finalized league is an idempotent no-op.
func AdvanceStage(s *models.LeagueState) error {
	if s.Finalized() {
		return nil // re-finalize is success with no effect
	}
	next, err := models.NextStage(s.Type, s.Stage)
	if err != nil {
		return preconditionf("%s", err.Error())
	}

	if next == models.StageFinalized {
		switch s.Type {
		case models.LeagueTypeDoubles, models.LeagueTypePutting:
			if !Complete(s) {
				return preconditionf("cannot finalize: not every card has submitted every round")
			}
		}
	}

	s.Stage = next
	return nil
}

// Reset wipes all derived state and reopens the league: teams, cards, scores,
// adjustments, watermarks, and (for tags) the round history all go; the
// checked-in roster stays. For tags leagues the current standings become the
// new initial tag assignment, so the ladder order survives the wipe even
// though its history does not.
func Reset(s *models.LeagueState) {
	if s.Type == models.LeagueTypeTags {
		standings := Standings(s)
		entries := make([]models.LadderEntry, 0, len(standings))
		for _, st := range standings {
			entries = append(entries, models.LadderEntry{PlayerID: st.PlayerID, Tag: st.Tag})
		}
		s.Ladder.Entries = entries
		s.Ladder.Rounds = []models.LadderRound{}
	}

	s.Teams = []models.Team{}
	s.Cards = []models.PlayCard{}
	s.Scores = map[models.RowKey]map[int]int{}
	s.Adjustments = map[models.RowKey]int{}
	s.Submitted = map[uuid.UUID]int{}
	s.Stage = models.StageUnlocked
}
