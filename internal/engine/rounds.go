// rounds.go — sequential round submission, gated per play-card.
// Each card carries a watermark: the highest round number whose scores are
// committed. Score entry is free-form below the ceiling and above the
// watermark; submission advances the watermark by exactly one and freezes
// that round's scores forever. Finalizing the league requires every card to
// have submitted every round.
package engine

import (
	"strings"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// Score ranges per league type. Doubles scores are strokes relative to par
// over 18 holes; putting scores are points per station round.
const (
	doublesMinScore = -18
	doublesMaxScore = 18
	puttingMinScore = 0
	puttingMaxScore = 50
)

// scoreRange returns the inclusive bounds for a league type's scores.
func scoreRange(t models.LeagueType) (min, max int) {
	if t == models.LeagueTypeDoubles {
		return doublesMinScore, doublesMaxScore
	}
	return puttingMinScore, puttingMaxScore
}

// ClampScore forces a raw value into the league type's valid range. Data
// entry is deliberately forgiving: out-of-range values are clamped at the
// boundary rather than rejected, so a fat-fingered 500 becomes the maximum
// instead of an error dialog.
func ClampScore(t models.LeagueType, value int) int {
	min, max := scoreRange(t)
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// CardRows returns the leaderboard row keys belonging to a card: one per
// team, plus one for the floating participant if the card carries them.
func CardRows(card *models.PlayCard) []models.RowKey {
	rows := make([]models.RowKey, 0, len(card.TeamIDs)+1)
	for _, tid := range card.TeamIDs {
		rows = append(rows, models.TeamRow(tid))
	}
	if card.CaliPlayerID != nil {
		rows = append(rows, models.CaliRow(*card.CaliPlayerID))
	}
	return rows
}

// RecordScore stores a (clamped) score for one row in one round. A round's
// scores freeze the moment it is submitted; writes below or at the watermark
// are rejected no matter what the league-wide stage says.
func RecordScore(s *models.LeagueState, key models.RowKey, round, value int) error {
	if s.Finalized() {
		return preconditionf("league is finalized; scores are read-only")
	}
	if round < 1 || round > s.Config.TotalRounds {
		return preconditionf("round must be between 1 and %d", s.Config.TotalRounds)
	}
	card := s.CardForRow(key)
	if card == nil {
		return preconditionf("row %s is not on any card", key)
	}
	if round <= s.SubmittedThrough(card.ID) {
		return preconditionf("round %d is already submitted for %s", round, card.Name)
	}

	if s.Scores[key] == nil {
		s.Scores[key] = map[int]int{}
	}
	s.Scores[key][round] = ClampScore(s.Type, value)
	return nil
}

// SubmitRound commits one round for one card. Every row on the card must have
// a recorded score for that round — any value counts, including zero; only
// absence blocks. Rounds commit strictly in order, and re-submitting an
// already-committed round is an idempotent no-op.
func SubmitRound(s *models.LeagueState, cardID uuid.UUID, round int) error {
	card := s.CardByID(cardID)
	if card == nil {
		return preconditionf("card not found")
	}
	if round < 1 || round > s.Config.TotalRounds {
		return preconditionf("round must be between 1 and %d", s.Config.TotalRounds)
	}

	watermark := s.SubmittedThrough(cardID)
	if round <= watermark {
		return nil // already committed; no-op
	}
	if round != watermark+1 {
		return preconditionf("%s must submit round %d next", card.Name, watermark+1)
	}

	var missing []string
	for _, key := range CardRows(card) {
		if _, ok := s.Scores[key][round]; !ok {
			missing = append(missing, rowLabel(s, key))
		}
	}
	if len(missing) > 0 {
		return preconditionf("round %d is missing scores for: %s", round, strings.Join(missing, ", "))
	}

	s.Submitted[cardID] = watermark + 1
	return nil
}

// MoveTeam relocates a team onto another card. Card membership freezes as
// soon as either card has committed a round, and the move may not leave the
// source card structurally invalid.
func MoveTeam(s *models.LeagueState, teamID, toCardID uuid.UUID) error {
	if s.Finalized() {
		return preconditionf("league is finalized")
	}
	from := s.CardForRow(models.TeamRow(teamID))
	if from == nil {
		return preconditionf("team is not on any card")
	}
	to := s.CardByID(toCardID)
	if to == nil {
		return preconditionf("destination card not found")
	}
	if from.ID == to.ID {
		return nil
	}
	if s.SubmittedThrough(from.ID) > 0 || s.SubmittedThrough(to.ID) > 0 {
		return preconditionf("card rosters are locked once a round has been submitted")
	}

	remaining := len(from.TeamIDs) - 1
	if remaining == 0 || (remaining == 1 && from.CaliPlayerID == nil) {
		return preconditionf("moving this team would leave %s structurally invalid", from.Name)
	}

	kept := from.TeamIDs[:0]
	for _, tid := range from.TeamIDs {
		if tid != teamID {
			kept = append(kept, tid)
		}
	}
	from.TeamIDs = kept
	to.TeamIDs = append(to.TeamIDs, teamID)
	return nil
}

// Complete reports whether every card has submitted every round. A league
// with no cards formed yet is never complete.
func Complete(s *models.LeagueState) bool {
	if len(s.Cards) == 0 {
		return false
	}
	for _, card := range s.Cards {
		if s.SubmittedThrough(card.ID) < s.Config.TotalRounds {
			return false
		}
	}
	return true
}

// rowLabel produces a display name for a row key.
func rowLabel(s *models.LeagueState, key models.RowKey) string {
	switch key.Kind {
	case models.RowTeam:
		if t := s.TeamByID(key.ID); t != nil {
			return t.Name
		}
	case models.RowCali:
		if p := s.PlayerByID(key.ID); p != nil {
			return p.Name + " (cali)"
		}
	}
	return key.String()
}
