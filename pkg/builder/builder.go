// Package builder holds the in-progress state of a new match: a linear
// wizard that assembles rosters and a goal log before anything is persisted.
// Dropping a Builder discards everything; no partial match ever reaches the
// store.
package builder

import (
	"errors"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
)

// Step is one stage of the wizard. Transitions are strictly linear.
type Step int

const (
	SelectingTeams Step = iota
	SelectingScorer
	SelectingAssist
	ReviewingSummary
)

func (s Step) String() string {
	switch s {
	case SelectingTeams:
		return "selecting_teams"
	case SelectingScorer:
		return "selecting_scorer"
	case SelectingAssist:
		return "selecting_assist"
	case ReviewingSummary:
		return "reviewing_summary"
	default:
		return "unknown"
	}
}

var (
	ErrWrongStep      = errors.New("operation not valid in current step")
	ErrRosterTooSmall = errors.New("each team needs more players")
	ErrNotInRoster    = errors.New("player is not in either roster")
	ErrNoScorer       = errors.New("no scorer selected")
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrAtLastStep     = errors.New("already at the last step")
)

// Option configures builder policy.
type Option func(*Builder)

// WithMinRosterSize sets the minimum number of players per team required to
// advance past team selection. The recorded flows never enforced one; the
// default here is 1 so a match can't be saved with an empty side.
func WithMinRosterSize(n int) Option {
	return func(b *Builder) { b.minRoster = n }
}

// WithSameTeamAssist requires the assist provider to be on the scorer's
// team. Off by default to stay compatible with historically stored matches,
// which carry cross-team assists.
func WithSameTeamAssist() Option {
	return func(b *Builder) { b.sameTeamAssist = true }
}

// Builder accumulates a match through the wizard steps. It is a plain
// in-memory value, not safe for concurrent use; one builder per viewer.
type Builder struct {
	step   Step
	teamA  []string
	teamB  []string
	events []matchlog.Event
	scorer string
	assist string

	minRoster      int
	sameTeamAssist bool
}

func New(opts ...Option) *Builder {
	b := &Builder{step: SelectingTeams, minRoster: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Step() Step { return b.step }

// TogglePlayer adds or removes a player from the given team's roster.
// Membership is exclusive at the point of toggling: joining one team removes
// the player from the other.
func (b *Builder) TogglePlayer(id string, team matchlog.Team) error {
	if b.step != SelectingTeams {
		return ErrWrongStep
	}

	switch team {
	case matchlog.TeamA:
		b.teamB = remove(b.teamB, id)
		if contains(b.teamA, id) {
			b.teamA = remove(b.teamA, id)
		} else {
			b.teamA = append(b.teamA, id)
		}
	case matchlog.TeamB:
		b.teamA = remove(b.teamA, id)
		if contains(b.teamB, id) {
			b.teamB = remove(b.teamB, id)
		} else {
			b.teamB = append(b.teamB, id)
		}
	default:
		return ErrNotInRoster
	}
	return nil
}

// Next advances one step, enforcing the roster-size policy when leaving team
// selection.
func (b *Builder) Next() error {
	switch b.step {
	case SelectingTeams:
		if len(b.teamA) < b.minRoster || len(b.teamB) < b.minRoster {
			return ErrRosterTooSmall
		}
		b.step = SelectingScorer
	case SelectingScorer:
		b.step = SelectingAssist
	case SelectingAssist:
		b.step = ReviewingSummary
	default:
		return ErrAtLastStep
	}
	return nil
}

// Back steps backwards without losing any accumulated state.
func (b *Builder) Back() error {
	if b.step == SelectingTeams {
		return ErrAtFirstStep
	}
	b.step--
	return nil
}

// SelectScorer picks the scorer for the next goal. A previously chosen
// assist is deliberately left in place.
func (b *Builder) SelectScorer(id string) error {
	if b.step != SelectingScorer && b.step != SelectingAssist {
		return ErrWrongStep
	}
	if !contains(b.teamA, id) && !contains(b.teamB, id) {
		return ErrNotInRoster
	}
	b.scorer = id
	return nil
}

// SelectAssist picks the assist provider, which may be anyone in either
// roster except the current scorer. Pass "" to clear.
func (b *Builder) SelectAssist(id string) error {
	if b.step != SelectingAssist {
		return ErrWrongStep
	}
	if id == "" {
		b.assist = ""
		return nil
	}
	if id == b.scorer {
		return matchlog.ErrSelfAssist
	}
	if !contains(b.teamA, id) && !contains(b.teamB, id) {
		return ErrNotInRoster
	}
	if b.sameTeamAssist && !sameTeam(b.teamA, b.teamB, b.scorer, id) {
		return matchlog.ErrCrossAssist
	}
	b.assist = id
	return nil
}

// AddGoal validates the current scorer/assist pair, appends the event and
// returns to scorer selection. Only the assist resets; keeping the scorer is
// a convenience for a player scoring several times in a row.
func (b *Builder) AddGoal() error {
	if b.step != SelectingAssist {
		return ErrWrongStep
	}
	if b.scorer == "" {
		return ErrNoScorer
	}

	event, err := matchlog.ValidateEvent(
		matchlog.Event{ScorerID: b.scorer, AssistID: b.assist},
		b.teamA, b.teamB,
	)
	if err != nil {
		return err
	}

	b.events = append(b.events, event)
	b.assist = ""
	b.step = SelectingScorer
	return nil
}

// Snapshot is the finished builder state handed to the store for an atomic
// commit: rosters and the accumulated event log.
type Snapshot struct {
	TeamA  []string
	TeamB  []string
	Events []matchlog.Event
}

// Snapshot returns the data to persist. Only valid on the summary step.
func (b *Builder) Snapshot() (Snapshot, error) {
	if b.step != ReviewingSummary {
		return Snapshot{}, ErrWrongStep
	}
	return Snapshot{
		TeamA:  append([]string(nil), b.teamA...),
		TeamB:  append([]string(nil), b.teamB...),
		Events: append([]matchlog.Event(nil), b.events...),
	}, nil
}

// Events exposes the in-progress log for live preview rendering.
func (b *Builder) Events() []matchlog.Event {
	return append([]matchlog.Event(nil), b.events...)
}

func (b *Builder) TeamA() []string { return append([]string(nil), b.teamA...) }
func (b *Builder) TeamB() []string { return append([]string(nil), b.teamB...) }

func contains(roster []string, id string) bool {
	for _, r := range roster {
		if r == id {
			return true
		}
	}
	return false
}

func remove(roster []string, id string) []string {
	out := roster[:0]
	for _, r := range roster {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

func sameTeam(teamA, teamB []string, a, b string) bool {
	return (contains(teamA, a) && contains(teamA, b)) ||
		(contains(teamB, a) && contains(teamB, b))
}
