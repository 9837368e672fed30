package engine

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trentd187/league-night/internal/models"
)

// newTagsLeague builds a tags league with the given players checked in.
// Check-in order determines the initial tags: first player gets tag 1.
func newTagsLeague(t *testing.T, names ...string) *models.LeagueState {
	t.Helper()
	s := &models.LeagueState{ID: uuid.New(), Name: "test tags", Type: models.LeagueTypeTags}
	s.ApplyDefaults()
	for _, n := range names {
		_, err := CheckIn(s, n, "")
		require.NoError(t, err)
	}
	return s
}

func playerIDByName(s *models.LeagueState, name string) uuid.UUID {
	for _, p := range s.Players {
		if p.Name == name {
			return p.ID
		}
	}
	return uuid.Nil
}

func tagOf(standings []Standing, id uuid.UUID) int {
	for _, st := range standings {
		if st.PlayerID == id {
			return st.Tag
		}
	}
	return 0
}

func TestStandingsFinishingOrderSwap(t *testing.T) {
	// P1 holds tag 1, P2 tag 2, P3 tag 3. Scores P1=5, P2=3, P3=4 mean the
	// finish order is P2, P3, P1, so the tags reassign ascending to P2, P3, P1.
	s := newTagsLeague(t, "P1", "P2", "P3")
	p1, p2, p3 := playerIDByName(s, "P1"), playerIDByName(s, "P2"), playerIDByName(s, "P3")

	_, err := RecordLadderRound(s, []models.LadderScore{
		{PlayerID: p1, Score: "5"},
		{PlayerID: p2, Score: "3"},
		{PlayerID: p3, Score: "4"},
	})
	require.NoError(t, err)

	standings := Standings(s)
	assert.Equal(t, 1, tagOf(standings, p2))
	assert.Equal(t, 2, tagOf(standings, p3))
	assert.Equal(t, 3, tagOf(standings, p1))
}

func TestStandingsSwapsOnlyWithinParticipants(t *testing.T) {
	// P4 (tag 4) sits out; the round can only redistribute tags 1-3.
	s := newTagsLeague(t, "P1", "P2", "P3", "P4")
	p1, p2, p3, p4 := playerIDByName(s, "P1"), playerIDByName(s, "P2"),
		playerIDByName(s, "P3"), playerIDByName(s, "P4")

	_, err := RecordLadderRound(s, []models.LadderScore{
		{PlayerID: p1, Score: "9"},
		{PlayerID: p2, Score: "8"},
		{PlayerID: p3, Score: "7"},
	})
	require.NoError(t, err)

	standings := Standings(s)
	assert.Equal(t, 4, tagOf(standings, p4), "sitting out must keep the tag")
	assert.Equal(t, 1, tagOf(standings, p3))
	assert.Equal(t, 2, tagOf(standings, p2))
	assert.Equal(t, 3, tagOf(standings, p1))
}

func TestStandingsSkipsRoundsWithFewerThanTwoValidParticipants(t *testing.T) {
	tests := []struct {
		name   string
		scores func(s *models.LeagueState) []models.LadderScore
	}{
		{
			name: "single participant",
			scores: func(s *models.LeagueState) []models.LadderScore {
				return []models.LadderScore{{PlayerID: playerIDByName(s, "P1"), Score: "3"}}
			},
		},
		{
			name: "second participant has no numeric score",
			scores: func(s *models.LeagueState) []models.LadderScore {
				return []models.LadderScore{
					{PlayerID: playerIDByName(s, "P1"), Score: "3"},
					{PlayerID: playerIDByName(s, "P2"), Score: "DNF"},
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTagsLeague(t, "P1", "P2", "P3")
			_, err := RecordLadderRound(s, tt.scores(s))
			require.NoError(t, err)

			for i, st := range Standings(s) {
				assert.Equal(t, i+1, st.Tag, "tags must be unchanged")
			}
		})
	}
}

func TestStandingsExcludesNonNumericScores(t *testing.T) {
	// P2's "abc" keeps their tag out of the swap entirely; P1 and P3 trade.
	s := newTagsLeague(t, "P1", "P2", "P3")
	p1, p2, p3 := playerIDByName(s, "P1"), playerIDByName(s, "P2"), playerIDByName(s, "P3")

	_, err := RecordLadderRound(s, []models.LadderScore{
		{PlayerID: p1, Score: "10"},
		{PlayerID: p2, Score: "abc"},
		{PlayerID: p3, Score: "2"},
	})
	require.NoError(t, err)

	standings := Standings(s)
	assert.Equal(t, 2, tagOf(standings, p2), "unparseable score keeps the prior tag")
	assert.Equal(t, 1, tagOf(standings, p3))
	assert.Equal(t, 3, tagOf(standings, p1))
}

func TestStandingsTagPermutationInvariant(t *testing.T) {
	// Across an arbitrary history, the multiset of tags is always exactly 1..N.
	s := newTagsLeague(t, "A", "B", "C", "D", "E")
	ids := make([]uuid.UUID, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.ID
	}

	histories := [][]models.LadderScore{
		{{PlayerID: ids[0], Score: "4"}, {PlayerID: ids[1], Score: "4"}, {PlayerID: ids[2], Score: "1"}},
		{{PlayerID: ids[3], Score: "-2"}, {PlayerID: ids[4], Score: "7"}},
		{{PlayerID: ids[0], Score: "0"}, {PlayerID: ids[2], Score: "0"}, {PlayerID: ids[4], Score: "0"}},
		{{PlayerID: ids[1], Score: "x"}, {PlayerID: ids[2], Score: "5"}, {PlayerID: ids[3], Score: "3"}},
	}
	for i, scores := range histories {
		_, err := RecordLadderRound(s, scores)
		require.NoError(t, err)

		standings := Standings(s)
		tags := make([]int, 0, len(standings))
		for _, st := range standings {
			tags = append(tags, st.Tag)
		}
		sort.Ints(tags)
		want := []int{1, 2, 3, 4, 5}
		assert.Equal(t, want, tags, "round %d broke the permutation", i+1)
	}
}

func TestStandingsTieBreakByPriorTag(t *testing.T) {
	// Equal scores resolve to prior tag order: both finishers tied, so the
	// lower tag stays ahead and nothing moves.
	s := newTagsLeague(t, "P1", "P2")
	p1, p2 := playerIDByName(s, "P1"), playerIDByName(s, "P2")

	_, err := RecordLadderRound(s, []models.LadderScore{
		{PlayerID: p2, Score: "3"},
		{PlayerID: p1, Score: "3"},
	})
	require.NoError(t, err)

	standings := Standings(s)
	assert.Equal(t, 1, tagOf(standings, p1))
	assert.Equal(t, 2, tagOf(standings, p2))
}

func TestPreviewRoundMatchesReplay(t *testing.T) {
	// Previewing a round against live standings must equal appending it to
	// history and replaying from scratch.
	s := newTagsLeague(t, "A", "B", "C", "D")
	ids := make([]uuid.UUID, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.ID
	}
	_, err := RecordLadderRound(s, []models.LadderScore{
		{PlayerID: ids[0], Score: "6"},
		{PlayerID: ids[1], Score: "2"},
		{PlayerID: ids[2], Score: "4"},
	})
	require.NoError(t, err)

	next := []models.LadderScore{
		{PlayerID: ids[1], Score: "5"},
		{PlayerID: ids[2], Score: "5"},
		{PlayerID: ids[3], Score: "1"},
	}
	preview := PreviewRound(s, next)

	_, err = RecordLadderRound(s, next)
	require.NoError(t, err)
	assert.Equal(t, Standings(s), preview)
}

func TestRecordLadderRoundValidation(t *testing.T) {
	s := newTagsLeague(t, "P1", "P2")
	p1 := playerIDByName(s, "P1")

	tests := []struct {
		name   string
		setup  func(s *models.LeagueState)
		scores []models.LadderScore
	}{
		{
			name:   "empty round",
			scores: nil,
		},
		{
			name:   "unknown player",
			scores: []models.LadderScore{{PlayerID: uuid.New(), Score: "1"}},
		},
		{
			name: "duplicate player",
			scores: []models.LadderScore{
				{PlayerID: p1, Score: "1"},
				{PlayerID: p1, Score: "2"},
			},
		},
		{
			name:   "finalized league",
			setup:  func(s *models.LeagueState) { s.Stage = models.StageFinalized },
			scores: []models.LadderScore{{PlayerID: p1, Score: "1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			league := newTagsLeague(t, "P1", "P2")
			if tt.setup != nil {
				tt.setup(league)
			}
			scores := tt.scores
			// Re-point scores at this league's player ids where applicable.
			for i := range scores {
				if scores[i].PlayerID == p1 {
					scores[i].PlayerID = playerIDByName(league, "P1")
				}
			}
			_, err := RecordLadderRound(league, scores)
			require.Error(t, err)
			assert.Equal(t, KindPrecondition, KindOf(err))
			assert.Empty(t, league.Ladder.Rounds, "failed record must not append")
		})
	}
}

func TestCheckInAssignsSequentialTags(t *testing.T) {
	s := newTagsLeague(t)
	for i := 1; i <= 4; i++ {
		p, err := CheckIn(s, fmt.Sprintf("Player %d", i), "")
		require.NoError(t, err)
		assert.Equal(t, i, tagOf(Standings(s), p.ID))
	}
}
