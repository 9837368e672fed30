package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsEmptyDocument(t *testing.T) {
	s := &LeagueState{ID: uuid.New()}
	s.ApplyDefaults()

	assert.Equal(t, LeagueTypeTags, s.Type)
	assert.Equal(t, StageUnlocked, s.Stage)
	assert.Equal(t, FormationRandom, s.Config.FormationMode)
	assert.Equal(t, CaliAuto, s.Config.CaliMode)
	assert.Equal(t, PoolCombined, s.Config.PoolMode)
	assert.Equal(t, MinTotalRounds, s.Config.TotalRounds)
	assert.Equal(t, SchemaVersion, s.SchemaVersion)

	assert.NotNil(t, s.Players)
	assert.NotNil(t, s.Ladder.Entries)
	assert.NotNil(t, s.Ladder.Rounds)
	assert.NotNil(t, s.Teams)
	assert.NotNil(t, s.Cards)
	assert.NotNil(t, s.Scores)
	assert.NotNil(t, s.Adjustments)
	assert.NotNil(t, s.Submitted)
}

func TestApplyDefaultsClampsRounds(t *testing.T) {
	s := &LeagueState{Type: LeagueTypePutting, Config: Config{TotalRounds: 99}}
	s.ApplyDefaults()
	assert.Equal(t, MaxTotalRounds, s.Config.TotalRounds)

	s = &LeagueState{Type: LeagueTypePutting, Config: Config{TotalRounds: -1}}
	s.ApplyDefaults()
	assert.Equal(t, MinTotalRounds, s.Config.TotalRounds)
}

func TestApplyDefaultsForcesDoublesToOneRound(t *testing.T) {
	s := &LeagueState{Type: LeagueTypeDoubles, Config: Config{TotalRounds: 4}}
	s.ApplyDefaults()
	assert.Equal(t, 1, s.Config.TotalRounds)
}

func TestApplyDefaultsResetsForeignStage(t *testing.T) {
	// A putting league can't sit at a doubles-only stage; an old document
	// carrying one restarts its lifecycle.
	s := &LeagueState{Type: LeagueTypePutting, Stage: StageCheckInLocked}
	s.ApplyDefaults()
	assert.Equal(t, StageUnlocked, s.Stage)

	// Known stages survive.
	s = &LeagueState{Type: LeagueTypePutting, Stage: StageLocked}
	s.ApplyDefaults()
	assert.Equal(t, StageLocked, s.Stage)
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	s := &LeagueState{ID: uuid.New(), Type: LeagueTypeDoubles, Stage: StageFormatLocked}
	s.ApplyDefaults()
	before := *s
	s.ApplyDefaults()
	assert.Equal(t, before, *s)
}
