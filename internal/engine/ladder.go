// ladder.go — the tag ladder engine.
// Players own integer tags (1..N, always a permutation). Each recorded round
// redistributes tags among exactly the players who played it: sort the
// round's valid participants by score, collect the tags they currently hold,
// sort those ascending, and hand the smallest tag to the best finisher.
// Players who sat out keep their tag untouched, so a round can only shuffle
// tags already held by its participants.
package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// Standing is one row of the ladder: a player and the tag they currently hold.
type Standing struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Tag      int       `json:"tag"`
}

// Standings replays the league's full round history over the initial tag
// assignments and returns the current ladder, ordered by tag ascending.
func Standings(s *models.LeagueState) []Standing {
	tags := make(map[uuid.UUID]int, len(s.Ladder.Entries))
	for _, e := range s.Ladder.Entries {
		tags[e.PlayerID] = e.Tag
	}
	for _, round := range s.Ladder.Rounds {
		applySwaps(tags, round.Scores)
	}
	return standingsFromTags(s, tags)
}

// PreviewRound applies one round's scores against the current live standings
// without recording anything. It produces exactly the ladder that Standings
// would return if the round were appended to history — admins use it to eyeball
// a just-entered round before committing it.
func PreviewRound(s *models.LeagueState, scores []models.LadderScore) []Standing {
	tags := make(map[uuid.UUID]int, len(s.Ladder.Entries))
	for _, st := range Standings(s) {
		tags[st.PlayerID] = st.Tag
	}
	applySwaps(tags, scores)
	return standingsFromTags(s, tags)
}

// RecordLadderRound validates and appends a round to history. Rounds are
// immutable once recorded; there is deliberately no edit or delete, only the
// whole-mode reset.
func RecordLadderRound(s *models.LeagueState, scores []models.LadderScore) (*models.LadderRound, error) {
	if s.Finalized() {
		return nil, preconditionf("league is finalized; no more rounds can be recorded")
	}
	if len(scores) == 0 {
		return nil, preconditionf("a round needs at least one score")
	}
	seen := map[uuid.UUID]bool{}
	for _, sc := range scores {
		if s.PlayerByID(sc.PlayerID) == nil {
			return nil, preconditionf("score references a player who is not checked in")
		}
		if seen[sc.PlayerID] {
			return nil, preconditionf("round lists the same player twice")
		}
		seen[sc.PlayerID] = true
	}
	round := models.LadderRound{
		ID:        uuid.New(),
		Scores:    scores,
		CreatedAt: time.Now().UTC(),
	}
	s.Ladder.Rounds = append(s.Ladder.Rounds, round)
	return &s.Ladder.Rounds[len(s.Ladder.Rounds)-1], nil
}

// ladderParticipant is one player eligible for a round's tag swap.
type ladderParticipant struct {
	playerID uuid.UUID
	score    int
	tag      int
}

// applySwaps performs one round's reassignment in place. A participant counts
// only if they currently hold a tag and entered a parseable numeric score;
// everyone else keeps their tag. Rounds with fewer than two valid participants
// are skipped entirely — there is nothing meaningful to swap.
//
// Tie-break on equal scores: participants are ordered by their current tag
// before the stable sort by score, so among tied finishers the lower tag
// finishes first and keeps it.
func applySwaps(tags map[uuid.UUID]int, scores []models.LadderScore) {
	parts := make([]ladderParticipant, 0, len(scores))
	for _, sc := range scores {
		tag, ok := tags[sc.PlayerID]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(sc.Score))
		if err != nil {
			continue
		}
		parts = append(parts, ladderParticipant{playerID: sc.PlayerID, score: n, tag: tag})
	}
	if len(parts) < 2 {
		return
	}

	// Deterministic input order first (tag ascending), then a stable sort by
	// score — equal scores resolve to prior tag order.
	sort.Slice(parts, func(i, j int) bool { return parts[i].tag < parts[j].tag })
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].score < parts[j].score })

	pool := make([]int, len(parts))
	for i, p := range parts {
		pool[i] = p.tag
	}
	sort.Ints(pool)

	// The i-th best finisher takes the i-th smallest tag from the pool that
	// played. The multiset of assigned tags is exactly the multiset collected,
	// so the league-wide permutation is preserved by construction.
	for i, p := range parts {
		tags[p.playerID] = pool[i]
	}
}

// standingsFromTags turns a tag map back into ordered rows. Checked-in
// players without a tag (possible mid-migration) are simply omitted.
func standingsFromTags(s *models.LeagueState, tags map[uuid.UUID]int) []Standing {
	out := make([]Standing, 0, len(tags))
	for _, p := range s.Players {
		tag, ok := tags[p.ID]
		if !ok {
			continue
		}
		out = append(out, Standing{PlayerID: p.ID, Name: p.Name, Tag: tag})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}
