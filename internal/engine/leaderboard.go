// leaderboard.go — derived standings with tie-aware ranks and admin
// adjustments. The leaderboard is never stored: it is computed on demand from
// the committed scores, so any point-in-time read of the document yields an
// internally consistent view.
package engine

import (
	"sort"

	"github.com/trentd187/league-night/internal/models"
)

// LeaderboardRow is one ranked line of the standings. Base and Final are
// pointers because a row whose card has not committed any rounds is
// "unscored": it sorts after every scored row and takes no rank, and an
// adjustment alone never promotes it.
type LeaderboardRow struct {
	Key        models.RowKey `json:"key"`
	Label      string        `json:"label"`
	Members    []string      `json:"members"`
	CardName   string        `json:"card_name,omitempty"`
	Base       *int          `json:"base_score"`
	Adjustment int           `json:"adjustment"`
	Final      *int          `json:"final_score"`
	Rank       int           `json:"rank,omitempty"`
}

// BuildLeaderboard ranks a set of rows. Scored rows sort by final score
// ascending (golf-style: lower is better); ties are stable. Unscored rows
// keep their incoming relative order after all scored rows.
//
// Ranks use standard competition ranking: tied rows share a rank and the next
// distinct score takes its 1-based position, so finals [-2, -2, 0] rank
// [1, 1, 3]. Unscored rows carry rank 0.
func BuildLeaderboard(rows []LeaderboardRow) []LeaderboardRow {
	out := make([]LeaderboardRow, len(rows))
	copy(out, rows)

	for i := range out {
		if out[i].Base != nil {
			f := *out[i].Base + out[i].Adjustment
			out[i].Final = &f
		} else {
			out[i].Final = nil
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i].Final, out[j].Final
		switch {
		case fi == nil:
			return false
		case fj == nil:
			return true
		default:
			return *fi < *fj
		}
	})

	for i := range out {
		if out[i].Final == nil {
			out[i].Rank = 0
			continue
		}
		if i > 0 && out[i-1].Final != nil && *out[i-1].Final == *out[i].Final {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}

// Leaderboard assembles and ranks the rows for a doubles or putting league.
// A row's base score sums only the rounds at or below its card's watermark;
// a tentative value entered for a later round stays invisible until that
// round is submitted.
func Leaderboard(s *models.LeagueState) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(s.Teams)+1)
	for _, card := range s.Cards {
		watermark := s.SubmittedThrough(card.ID)
		for _, key := range CardRows(&card) {
			row := LeaderboardRow{
				Key:        key,
				Label:      rowLabel(s, key),
				Members:    rowMembers(s, key),
				CardName:   card.Name,
				Adjustment: s.Adjustments[key],
			}
			if watermark > 0 {
				total := 0
				for r := 1; r <= watermark; r++ {
					total += s.Scores[key][r]
				}
				row.Base = &total
			}
			rows = append(rows, row)
		}
	}
	return BuildLeaderboard(rows)
}

// SetAdjustment records an admin offset for a row. Adjustments live
// independently of base scores, so a row with no committed rounds can still
// carry one.
func SetAdjustment(s *models.LeagueState, key models.RowKey, delta int) error {
	if err := checkAdjustmentTarget(s, key); err != nil {
		return err
	}
	s.Adjustments[key] = delta
	return nil
}

// ClearAdjustment removes a row's adjustment. The base score is untouched;
// clearing an adjustment that was never set is a no-op.
func ClearAdjustment(s *models.LeagueState, key models.RowKey) error {
	if err := checkAdjustmentTarget(s, key); err != nil {
		return err
	}
	delete(s.Adjustments, key)
	return nil
}

// SetDesiredFinal computes and stores the adjustment that makes a row's final
// score equal the desired value: exactly desired − base, with a missing base
// treated as 0.
func SetDesiredFinal(s *models.LeagueState, key models.RowKey, desired int) error {
	if err := checkAdjustmentTarget(s, key); err != nil {
		return err
	}
	base := 0
	if card := s.CardForRow(key); card != nil {
		for r := 1; r <= s.SubmittedThrough(card.ID); r++ {
			base += s.Scores[key][r]
		}
	}
	s.Adjustments[key] = desired - base
	return nil
}

// checkAdjustmentTarget rejects adjustments against rows that don't exist on
// any card.
func checkAdjustmentTarget(s *models.LeagueState, key models.RowKey) error {
	if s.CardForRow(key) == nil {
		return preconditionf("row %s is not on any card", key)
	}
	return nil
}

// rowMembers lists the player names behind a row.
func rowMembers(s *models.LeagueState, key models.RowKey) []string {
	switch key.Kind {
	case models.RowTeam:
		if t := s.TeamByID(key.ID); t != nil {
			names := make([]string, 0, 2)
			for _, pid := range t.PlayerIDs {
				if p := s.PlayerByID(pid); p != nil {
					names = append(names, p.Name)
				}
			}
			return names
		}
	case models.RowCali:
		if p := s.PlayerByID(key.ID); p != nil {
			return []string{p.Name}
		}
	}
	return nil
}
