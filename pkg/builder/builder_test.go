package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
)

func teamsSelected(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	b := New(opts...)
	require.NoError(t, b.TogglePlayer("p1", matchlog.TeamA))
	require.NoError(t, b.TogglePlayer("p2", matchlog.TeamA))
	require.NoError(t, b.TogglePlayer("p3", matchlog.TeamB))
	require.NoError(t, b.TogglePlayer("p4", matchlog.TeamB))
	return b
}

func TestTogglePlayerExclusiveMembership(t *testing.T) {
	b := New()
	require.NoError(t, b.TogglePlayer("p1", matchlog.TeamA))
	assert.Equal(t, []string{"p1"}, b.TeamA())

	// Switching sides removes the player from the old team.
	require.NoError(t, b.TogglePlayer("p1", matchlog.TeamB))
	assert.Empty(t, b.TeamA())
	assert.Equal(t, []string{"p1"}, b.TeamB())

	// Toggling again on the same team deselects.
	require.NoError(t, b.TogglePlayer("p1", matchlog.TeamB))
	assert.Empty(t, b.TeamB())
}

func TestNextEnforcesMinRoster(t *testing.T) {
	b := New()
	assert.ErrorIs(t, b.Next(), ErrRosterTooSmall)

	require.NoError(t, b.TogglePlayer("p1", matchlog.TeamA))
	assert.ErrorIs(t, b.Next(), ErrRosterTooSmall, "team B still empty")

	require.NoError(t, b.TogglePlayer("p2", matchlog.TeamB))
	assert.NoError(t, b.Next())
	assert.Equal(t, SelectingScorer, b.Step())
}

func TestNextEnforcesConfiguredMinRoster(t *testing.T) {
	b := teamsSelected(t, WithMinRosterSize(3))
	assert.ErrorIs(t, b.Next(), ErrRosterTooSmall)
}

func TestLinearTransitions(t *testing.T) {
	b := teamsSelected(t)

	assert.ErrorIs(t, b.Back(), ErrAtFirstStep)

	for _, want := range []Step{SelectingScorer, SelectingAssist, ReviewingSummary} {
		require.NoError(t, b.Next())
		assert.Equal(t, want, b.Step())
	}
	assert.ErrorIs(t, b.Next(), ErrAtLastStep)

	require.NoError(t, b.Back())
	assert.Equal(t, SelectingAssist, b.Step())
}

func TestSelectScorerRestrictedToRosters(t *testing.T) {
	b := teamsSelected(t)
	require.NoError(t, b.Next())

	assert.ErrorIs(t, b.SelectScorer("p9"), ErrNotInRoster)
	assert.NoError(t, b.SelectScorer("p1"))
}

func TestSelectAssistRules(t *testing.T) {
	b := teamsSelected(t)
	require.NoError(t, b.Next())
	require.NoError(t, b.SelectScorer("p1"))
	require.NoError(t, b.Next())

	assert.ErrorIs(t, b.SelectAssist("p1"), matchlog.ErrSelfAssist)
	assert.ErrorIs(t, b.SelectAssist("p9"), ErrNotInRoster)
	assert.NoError(t, b.SelectAssist("p3"), "cross-team assist allowed by default")
	assert.NoError(t, b.SelectAssist(""))
	assert.NoError(t, b.SelectAssist("p2"))
}

func TestSelectAssistSameTeamPolicy(t *testing.T) {
	b := teamsSelected(t, WithSameTeamAssist())
	require.NoError(t, b.Next())
	require.NoError(t, b.SelectScorer("p1"))
	require.NoError(t, b.Next())

	assert.ErrorIs(t, b.SelectAssist("p3"), matchlog.ErrCrossAssist)
	assert.NoError(t, b.SelectAssist("p2"))
}

func TestAddGoalAppendsAndResetsOnlyAssist(t *testing.T) {
	b := teamsSelected(t)
	require.NoError(t, b.Next())
	require.NoError(t, b.SelectScorer("p1"))
	require.NoError(t, b.Next())
	require.NoError(t, b.SelectAssist("p2"))

	require.NoError(t, b.AddGoal())
	assert.Equal(t, SelectingScorer, b.Step(), "returns to scorer selection")

	// Scorer sticks around so a repeated scorer is two taps away.
	require.NoError(t, b.Next())
	require.NoError(t, b.AddGoal())

	events := b.Events()
	require.Len(t, events, 2)
	assert.Equal(t, matchlog.Event{Team: matchlog.TeamA, ScorerID: "p1", AssistID: "p2"}, events[0])
	assert.Equal(t, matchlog.Event{Team: matchlog.TeamA, ScorerID: "p1"}, events[1], "assist cleared after each goal")
}

func TestAddGoalWithoutScorer(t *testing.T) {
	b := teamsSelected(t)
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	assert.ErrorIs(t, b.AddGoal(), ErrNoScorer)
}

func TestSnapshotOnlyOnSummary(t *testing.T) {
	b := teamsSelected(t)
	_, err := b.Snapshot()
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, b.Next())
	require.NoError(t, b.SelectScorer("p3"))
	require.NoError(t, b.Next())
	require.NoError(t, b.AddGoal())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())

	snap, err := b.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, snap.TeamA)
	assert.Equal(t, []string{"p3", "p4"}, snap.TeamB)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, matchlog.TeamB, snap.Events[0].Team)
}

func TestSnapshotIsACopy(t *testing.T) {
	b := teamsSelected(t)
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())

	snap, err := b.Snapshot()
	require.NoError(t, err)
	snap.TeamA[0] = "mutated"
	assert.Equal(t, []string{"p1", "p2"}, b.TeamA())
}
