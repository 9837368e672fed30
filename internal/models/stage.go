// stage.go — the lock-stage state machine.
// The original product tracked progress with loose booleans (formatLocked,
// checkInLocked, finalized) whose ordering was implied by scattered checks.
// Here each league type has one explicit ordered stage sequence and a single
// transition function; backward or skipped transitions are rejected outright.
// The only way back is a whole-mode reset, which wipes all derived state.
package models

import "fmt"

// Stage is one lock stage in a league's forward-only lifecycle.
type Stage string

const (
	StageUnlocked      Stage = "unlocked"        // Config edits and check-in open
	StageFormatLocked  Stage = "format_locked"   // Config frozen; check-in still open (doubles only)
	StageCheckInLocked Stage = "check_in_locked" // Roster frozen; formation and scoring happen here (doubles only)
	StageLocked        Stage = "locked"          // Roster frozen; rounds in progress (putting only)
	StageFinalized     Stage = "finalized"       // Scores committed; league read-only
)

// stageOrder lists each league type's stages in their one legal order.
var stageOrder = map[LeagueType][]Stage{
	LeagueTypeDoubles: {StageUnlocked, StageFormatLocked, StageCheckInLocked, StageFinalized},
	LeagueTypePutting: {StageUnlocked, StageLocked, StageFinalized},
	LeagueTypeTags:    {StageUnlocked, StageFinalized},
}

// StageSequence returns the ordered stages for a league type.
func StageSequence(t LeagueType) []Stage {
	return stageOrder[t]
}

// stageIndex returns a stage's position in the league type's sequence,
// or -1 if the stage does not belong to that sequence at all.
func stageIndex(t LeagueType, s Stage) int {
	for i, st := range stageOrder[t] {
		if st == s {
			return i
		}
	}
	return -1
}

// NextStage returns the stage after current for the given league type.
// It returns an error for unknown stages and for the terminal stage —
// callers treat re-finalizing separately as an idempotent no-op.
func NextStage(t LeagueType, current Stage) (Stage, error) {
	seq := stageOrder[t]
	idx := stageIndex(t, current)
	if idx < 0 {
		return "", fmt.Errorf("stage %q is not valid for a %s league", current, t)
	}
	if idx == len(seq)-1 {
		return "", fmt.Errorf("league is already %s", current)
	}
	return seq[idx+1], nil
}

// StageAtLeast reports whether the league has reached (or passed) the given
// stage in its own sequence. Stages outside the sequence report false.
func (s *LeagueState) StageAtLeast(stage Stage) bool {
	have := stageIndex(s.Type, s.Stage)
	want := stageIndex(s.Type, stage)
	return have >= 0 && want >= 0 && have >= want
}

// RosterLocked reports whether check-in changes are still allowed.
// Doubles rosters freeze at check_in_locked; putting and tags at their first
// lock stage.
func (s *LeagueState) RosterLocked() bool {
	switch s.Type {
	case LeagueTypeDoubles:
		return s.StageAtLeast(StageCheckInLocked)
	case LeagueTypePutting:
		return s.StageAtLeast(StageLocked)
	default:
		return s.StageAtLeast(StageFinalized)
	}
}

// ConfigLocked reports whether the pre-play configuration is frozen.
func (s *LeagueState) ConfigLocked() bool {
	switch s.Type {
	case LeagueTypeDoubles:
		return s.StageAtLeast(StageFormatLocked)
	case LeagueTypePutting:
		return s.StageAtLeast(StageLocked)
	default:
		return s.StageAtLeast(StageFinalized)
	}
}

// Finalized reports whether the league has reached its terminal stage.
func (s *LeagueState) Finalized() bool {
	return s.Stage == StageFinalized
}
