// formation.go — partitioning a locked roster into teams and play-cards.
// Formation is all-or-nothing: every constraint is checked and the complete
// set of teams and cards is built in memory before anything on the state is
// replaced. A failure of any step leaves the league exactly as it was.
//
// Randomness comes in through an injected *rand.Rand so formation is
// reproducible: tests (and a curious admin with a seed) get identical output
// for identical input.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/models"
)

// startSlotCycle is the number of starting positions on the course. Cards get
// odd slots 1, 3, 5, … and wrap back to 1 after slot 17.
const startSlotCycle = 18

// GenerateFormation builds teams and cards for a doubles or putting league.
// explicitCaliID is only consulted in manual cali mode, where an odd roster
// requires the admin to name the floating participant.
//
// Regenerating is allowed as long as no card has committed a round; doing so
// replaces the previous formation and clears all uncommitted scores and
// adjustments, since their row keys no longer exist.
func GenerateFormation(s *models.LeagueState, rng *rand.Rand, explicitCaliID *uuid.UUID) error {
	if s.Type == models.LeagueTypeTags {
		return preconditionf("tags leagues play individually; there is nothing to form")
	}
	if s.Finalized() {
		return preconditionf("league is finalized")
	}
	if !s.RosterLocked() {
		return preconditionf("lock check-in before forming teams")
	}
	for _, w := range s.Submitted {
		if w > 0 {
			return preconditionf("scores have been committed; reset the league to re-form teams")
		}
	}

	roster := make([]models.Player, len(s.Players))
	copy(roster, s.Players)
	n := len(roster)
	if n < 3 || (n%2 == 0 && n < 4) {
		return infeasiblef("not enough players: need at least 4 (or 3 with a floating participant), have %d", n)
	}
	if s.Config.FormationMode == models.FormationSeated && s.Config.PoolMode != models.PoolSplit {
		return infeasiblef("seated formation requires a split pool")
	}

	// Step 1: the floating participant. Required exactly when the roster is
	// odd; an even roster must not name one.
	cali, err := chooseCali(s, roster, rng, explicitCaliID)
	if err != nil {
		return err
	}
	pool := roster
	if cali != nil {
		pool = make([]models.Player, 0, n-1)
		for _, p := range roster {
			if p.ID != cali.ID {
				pool = append(pool, p)
			}
		}
	}

	// Step 2: pair the (now even) pool into 2-person teams.
	teams, err := pairPool(pool, s.Config.FormationMode, rng)
	if err != nil {
		return err
	}

	// Step 3: assemble cards from the teams.
	cards, err := assembleCards(teams, cali)
	if err != nil {
		return err
	}

	// Everything validated; swap the formation in atomically.
	s.Teams = teams
	s.Cards = cards
	s.Scores = map[models.RowKey]map[int]int{}
	s.Adjustments = map[models.RowKey]int{}
	s.Submitted = map[uuid.UUID]int{}
	return nil
}

// chooseCali resolves the floating participant, or nil for an even roster.
func chooseCali(s *models.LeagueState, roster []models.Player, rng *rand.Rand, explicitCaliID *uuid.UUID) (*models.Player, error) {
	if len(roster)%2 == 0 {
		if explicitCaliID != nil {
			return nil, preconditionf("roster is even; no floating participant is needed")
		}
		return nil, nil
	}

	if s.Config.CaliMode == models.CaliManual {
		if explicitCaliID == nil {
			return nil, preconditionf("roster is odd and cali_mode is manual; supply cali_player_id")
		}
		for i := range roster {
			if roster[i].ID == *explicitCaliID {
				return &roster[i], nil
			}
		}
		return nil, preconditionf("the chosen floating participant is not checked in")
	}

	// Auto mode. Seated formation draws from whichever group is odd-sized so
	// the remainder pairs A-to-B cleanly; group A wins any ambiguity. Random
	// formation draws uniformly from the whole roster.
	candidates := roster
	if s.Config.FormationMode == models.FormationSeated {
		a, b := splitByGroup(roster)
		switch {
		case len(a)%2 == 1:
			candidates = a
		case len(b)%2 == 1:
			candidates = b
		default:
			candidates = a
		}
		if len(candidates) == 0 {
			candidates = roster
		}
	}
	pick := candidates[rng.Intn(len(candidates))]
	for i := range roster {
		if roster[i].ID == pick.ID {
			return &roster[i], nil
		}
	}
	return nil, nil // unreachable; pick came from roster
}

// pairPool splits an even pool into 2-person teams.
func pairPool(pool []models.Player, mode models.FormationMode, rng *rand.Rand) ([]models.Team, error) {
	if len(pool)%2 != 0 {
		return nil, infeasiblef("internal: pairing pool has odd size %d", len(pool))
	}

	var ordered []models.Player
	switch mode {
	case models.FormationSeated:
		a, b := splitByGroup(pool)
		if (len(a) == 0) != (len(b) == 0) {
			return nil, infeasiblef("seated formation needs players in both pools; one side is empty")
		}
		rng.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
		rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })

		// A with B one-to-one as far as both last, then whoever is left
		// pairs among themselves.
		common := len(a)
		if len(b) < common {
			common = len(b)
		}
		for i := 0; i < common; i++ {
			ordered = append(ordered, a[i], b[i])
		}
		leftovers := append(a[common:], b[common:]...)
		if len(leftovers)%2 != 0 {
			return nil, infeasiblef("leftover players cannot be paired evenly")
		}
		ordered = append(ordered, leftovers...)
	default:
		ordered = make([]models.Player, len(pool))
		copy(ordered, pool)
		rng.Shuffle(len(ordered), func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	}

	teams := make([]models.Team, 0, len(ordered)/2)
	for i := 0; i+1 < len(ordered); i += 2 {
		p1, p2 := ordered[i], ordered[i+1]
		teams = append(teams, models.Team{
			ID:        uuid.New(),
			Name:      p1.Name + " & " + p2.Name,
			PlayerIDs: [2]uuid.UUID{p1.ID, p2.ID},
		})
	}
	return teams, nil
}

// assembleCards greedily consumes teams two at a time, then resolves the
// leftover team and the floating participant per the card rules: a lone
// leftover team takes the Cali (3-person card) or merges into the most recent
// card; an unplaced Cali attaches to a 2-team card without one, else a 1-team
// card without one. A card may never end up with zero teams, or with one team
// and no Cali.
func assembleCards(teams []models.Team, cali *models.Player) ([]models.PlayCard, error) {
	type draft struct {
		teamIDs []uuid.UUID
		caliID  *uuid.UUID
	}
	var drafts []*draft

	for i := 0; i+1 < len(teams); i += 2 {
		drafts = append(drafts, &draft{teamIDs: []uuid.UUID{teams[i].ID, teams[i+1].ID}})
	}

	caliPlaced := false
	if len(teams)%2 == 1 {
		last := teams[len(teams)-1]
		switch {
		case cali != nil:
			id := cali.ID
			drafts = append(drafts, &draft{teamIDs: []uuid.UUID{last.ID}, caliID: &id})
			caliPlaced = true
		case len(drafts) > 0:
			prev := drafts[len(drafts)-1]
			prev.teamIDs = append(prev.teamIDs, last.ID)
		default:
			return nil, infeasiblef("a single team cannot form a card on its own")
		}
	}

	if cali != nil && !caliPlaced {
		var target *draft
		for _, d := range drafts {
			if len(d.teamIDs) == 2 && d.caliID == nil {
				target = d
				break
			}
		}
		if target == nil {
			for _, d := range drafts {
				if len(d.teamIDs) == 1 && d.caliID == nil {
					target = d
					break
				}
			}
		}
		if target == nil {
			return nil, infeasiblef("no card can take the floating participant")
		}
		id := cali.ID
		target.caliID = &id
	}

	cards := make([]models.PlayCard, 0, len(drafts))
	for i, d := range drafts {
		if len(d.teamIDs) == 0 {
			return nil, infeasiblef("internal: card %d has no teams", i+1)
		}
		if len(d.teamIDs) == 1 && d.caliID == nil {
			return nil, infeasiblef("card %d would hold a single team with no floating participant", i+1)
		}
		cards = append(cards, models.PlayCard{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("Card %d", i+1),
			TeamIDs:      d.teamIDs,
			CaliPlayerID: d.caliID,
			StartSlot:    (2*i)%startSlotCycle + 1,
		})
	}
	return cards, nil
}

// splitByGroup partitions players by their A/B pool label.
func splitByGroup(players []models.Player) (a, b []models.Player) {
	for _, p := range players {
		if p.Group == "B" {
			b = append(b, p)
		} else {
			a = append(a, p)
		}
	}
	return a, b
}
