package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRecord_MergeNeverLowers(t *testing.T) {
	record := &PlayerRecord{Position: "нападающий", ClubCaps: 25, ClubScored: 3}

	record.MergeClubTotals(20, 1)
	assert.Equal(t, 25, record.ClubCaps)
	assert.Equal(t, 3, record.ClubScored)

	record.MergeClubTotals(40, 7)
	assert.Equal(t, 40, record.ClubCaps)
	assert.Equal(t, 7, record.ClubScored)
	assert.Zero(t, record.ClubConceded)
}

func TestPlayerRecord_GoalkeeperSplit(t *testing.T) {
	record := &PlayerRecord{Position: GoalkeeperPosition}

	record.AddGoals(12)
	record.MergeNationalTotals(30, 25)

	assert.Equal(t, 12, record.ClubConceded)
	assert.Zero(t, record.ClubScored)
	assert.Equal(t, 25, record.NationalConceded)
	assert.Zero(t, record.NationalScored)
}

func TestIsOutOfScope(t *testing.T) {
	assert.True(t, IsOutOfScope(fmt.Errorf("page x: %w", ErrUnrecognizedPage)))
	assert.True(t, IsOutOfScope(ErrNoSeniorNationalTeam))
	assert.False(t, IsOutOfScope(ErrMalformedField))
	assert.False(t, IsOutOfScope(errors.New("boom")))
}

func TestPageKind_String(t *testing.T) {
	assert.Equal(t, "tournament", PageTournament.String())
	assert.Equal(t, "team", PageTeam.String())
	assert.Equal(t, "player", PagePlayer.String())
	assert.Equal(t, "unknown", PageUnknown.String())
}

func TestExtractionResult_JSON(t *testing.T) {
	data, err := json.Marshal(ExtractionResult{Kind: PageTeam, FollowUps: []string{"u"}})

	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"team","follow_ups":["u"]}`, string(data))
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("REQUEST_DELAY", "250ms")
	t.Setenv("MAX_RETRIES", "1")
	t.Setenv("MAX_PAGES", "40")
	t.Setenv("SENIOR_TEAM_POLICY", "Exclusion")

	config := DefaultConfig()
	require.NoError(t, config.ApplyEnv())

	assert.Equal(t, 250*time.Millisecond, config.RequestDelay)
	assert.Equal(t, 1, config.MaxRetries)
	assert.Equal(t, 40, config.MaxPages)
	assert.Equal(t, PolicyExclusion, config.SeniorTeamPolicy)
}

func TestConfig_ApplyEnvInvalid(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_REQUESTS", "zero")
	t.Setenv("SENIOR_TEAM_POLICY", "random")

	config := DefaultConfig()
	err := config.ApplyEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CONCURRENT_REQUESTS")
	assert.Contains(t, err.Error(), "SENIOR_TEAM_POLICY")
	assert.Equal(t, 5, config.MaxConcurrentRequests)
	assert.Equal(t, PolicyRegistry, config.SeniorTeamPolicy)
}
