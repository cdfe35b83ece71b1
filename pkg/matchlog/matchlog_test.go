package matchlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamA = []string{"p1", "p2"}
	teamB = []string{"p3", "p4"}
)

func TestValidateEvent(t *testing.T) {
	cases := []struct {
		name     string
		event    Event
		wantTeam Team
		wantErr  error
	}{
		{"scorer on team A", Event{ScorerID: "p1"}, TeamA, nil},
		{"scorer on team B", Event{ScorerID: "p4"}, TeamB, nil},
		{"assisted goal", Event{ScorerID: "p1", AssistID: "p2"}, TeamA, nil},
		{"cross-team assist allowed", Event{ScorerID: "p1", AssistID: "p3"}, TeamA, nil},
		{"stored team is ignored", Event{Team: TeamB, ScorerID: "p1"}, TeamA, nil},
		{"unknown scorer", Event{ScorerID: "p9"}, "", ErrInvalidScorer},
		{"empty scorer", Event{}, "", ErrInvalidScorer},
		{"self assist", Event{ScorerID: "p1", AssistID: "p1"}, "", ErrSelfAssist},
		{"unknown assist", Event{ScorerID: "p1", AssistID: "p9"}, "", ErrInvalidAssist},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ValidateEvent(c.event, teamA, teamB)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantTeam, got.Team)
			assert.Equal(t, c.event.ScorerID, got.ScorerID)
			assert.Equal(t, c.event.AssistID, got.AssistID)
		})
	}
}

func TestValidateEventAmbiguousRoster(t *testing.T) {
	// Disjoint rosters are an invariant of stored matches, but the check
	// must hold for malformed input too.
	_, err := ValidateEvent(Event{ScorerID: "p1"}, []string{"p1"}, []string{"p1"})
	assert.ErrorIs(t, err, ErrAmbiguousTeam)
}

func TestScoreForSumsToEventCount(t *testing.T) {
	events := []Event{
		{Team: TeamA, ScorerID: "p1", AssistID: "p2"},
		{Team: TeamB, ScorerID: "p3"},
		{Team: TeamA, ScorerID: "p1"},
		{Team: TeamA, ScorerID: "p2", AssistID: "p1"},
	}

	a := ScoreFor(events, TeamA)
	b := ScoreFor(events, TeamB)
	assert.Equal(t, 3, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, len(events), a+b, "every event counts for exactly one team")
}

func TestScoreForEmptyLog(t *testing.T) {
	assert.Equal(t, 0, ScoreFor(nil, TeamA))
	assert.Equal(t, 0, ScoreFor(nil, TeamB))
}

func TestCounterDeltas(t *testing.T) {
	events := []Event{
		{Team: TeamA, ScorerID: "p1", AssistID: "p2"},
		{Team: TeamB, ScorerID: "p3"},
	}

	deltas := CounterDeltas(teamA, teamB, events)
	require.Len(t, deltas, 4)

	byID := map[string]PlayerDelta{}
	for _, d := range deltas {
		byID[d.PlayerID] = d
	}

	assert.Equal(t, PlayerDelta{PlayerID: "p1", Goals: 1, MatchesPlayed: 1}, byID["p1"])
	assert.Equal(t, PlayerDelta{PlayerID: "p2", Assists: 1, MatchesPlayed: 1}, byID["p2"])
	assert.Equal(t, PlayerDelta{PlayerID: "p3", Goals: 1, MatchesPlayed: 1}, byID["p3"])
	assert.Equal(t, PlayerDelta{PlayerID: "p4", MatchesPlayed: 1}, byID["p4"])
}

func TestCounterDeltasDeterministicOrder(t *testing.T) {
	events := []Event{{Team: TeamB, ScorerID: "p4"}}

	first := CounterDeltas(teamA, teamB, events)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CounterDeltas(teamA, teamB, events))
	}

	ids := make([]string, len(first))
	for i, d := range first {
		ids[i] = d.PlayerID
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids)
}

func TestCounterDeltasGoalSumMatchesEventCount(t *testing.T) {
	events := []Event{
		{Team: TeamA, ScorerID: "p1", AssistID: "p2"},
		{Team: TeamA, ScorerID: "p1"},
		{Team: TeamB, ScorerID: "p3", AssistID: "p4"},
		{Team: TeamB, ScorerID: "p4", AssistID: "p3"},
		{Team: TeamA, ScorerID: "p2"},
	}

	goals := 0
	for _, d := range CounterDeltas(teamA, teamB, events) {
		goals += d.Goals
	}
	assert.Equal(t, len(events), goals)
}

func TestCounterDeltasRepeatedScorer(t *testing.T) {
	events := []Event{
		{Team: TeamA, ScorerID: "p1"},
		{Team: TeamA, ScorerID: "p1"},
		{Team: TeamA, ScorerID: "p1"},
	}

	deltas := CounterDeltas(teamA, teamB, events)
	for _, d := range deltas {
		assert.Equal(t, 1, d.MatchesPlayed, "matchesPlayed is once per match, not per goal")
		if d.PlayerID == "p1" {
			assert.Equal(t, 3, d.Goals)
		}
	}
}

func TestCounterDeltasOrphanCredits(t *testing.T) {
	// An event referencing a player outside both rosters cannot pass
	// validation, but a delta must still never be dropped.
	events := []Event{{Team: TeamA, ScorerID: "ghost"}}

	deltas := CounterDeltas(teamA, teamB, events)
	byID := map[string]PlayerDelta{}
	for _, d := range deltas {
		byID[d.PlayerID] = d
	}
	assert.Equal(t, PlayerDelta{PlayerID: "ghost", Goals: 1}, byID["ghost"])
}
