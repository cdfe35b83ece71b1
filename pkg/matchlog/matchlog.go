// Package matchlog defines the event log of a single match: every recorded
// event is one goal, credited to a scorer and optionally an assist provider.
package matchlog

import (
	"errors"
	"sort"
)

// Team identifies one side of a match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

var (
	ErrInvalidScorer = errors.New("scorer is not in either roster")
	ErrSelfAssist    = errors.New("assist provider equals scorer")
	ErrAmbiguousTeam = errors.New("scorer team is ambiguous or missing")
	ErrInvalidAssist = errors.New("assist provider is not in either roster")
	ErrCrossAssist   = errors.New("assist provider is not on the scorer's team")
)

// Event is one goal. AssistID is empty when the goal was unassisted.
type Event struct {
	Team     Team   `firestore:"team" json:"team" validate:"required,oneof=A B"`
	ScorerID string `firestore:"scorerId" json:"scorerId" validate:"required"`
	AssistID string `firestore:"assistId,omitempty" json:"assistId,omitempty" validate:"omitempty,nefield=ScorerID"`
}

func contains(roster []string, id string) bool {
	for _, r := range roster {
		if r == id {
			return true
		}
	}
	return false
}

// ValidateEvent checks an event against the two rosters and returns a copy
// with Team inferred from whichever roster contains the scorer. The stored
// Team field of the input is ignored; membership is the source of truth.
func ValidateEvent(e Event, teamA, teamB []string) (Event, error) {
	inA := contains(teamA, e.ScorerID)
	inB := contains(teamB, e.ScorerID)

	switch {
	case e.ScorerID == "":
		return Event{}, ErrInvalidScorer
	case inA && inB:
		// Rosters are disjoint by construction; checked anyway.
		return Event{}, ErrAmbiguousTeam
	case !inA && !inB:
		return Event{}, ErrInvalidScorer
	}

	if e.AssistID != "" {
		if e.AssistID == e.ScorerID {
			return Event{}, ErrSelfAssist
		}
		if !contains(teamA, e.AssistID) && !contains(teamB, e.AssistID) {
			return Event{}, ErrInvalidAssist
		}
	}

	out := e
	if inA {
		out.Team = TeamA
	} else {
		out.Team = TeamB
	}
	return out, nil
}

// ScoreFor counts the goals credited to one team. One event is one goal.
func ScoreFor(events []Event, team Team) int {
	n := 0
	for _, e := range events {
		if e.Team == team {
			n++
		}
	}
	return n
}

// PlayerDelta is the set of counter increments one match contributes to one
// player. Deltas are relative so that concurrent match saves commute.
type PlayerDelta struct {
	PlayerID      string
	Goals         int
	Assists       int
	MatchesPlayed int
}

// CounterDeltas folds a match into one delta per player: every roster member
// gets matchesPlayed+1, every event credits goals to its scorer and assists
// to its assist provider. The result must be applied at most once per match;
// the store commits all deltas and the match record in a single transaction.
//
// Order is deterministic: team A roster order, then team B, then any IDs
// credited by events but absent from both rosters (sorted). The latter cannot
// happen for a match that passed ValidateEvent but is kept so a delta is
// never silently dropped.
func CounterDeltas(teamA, teamB []string, events []Event) []PlayerDelta {
	index := make(map[string]int, len(teamA)+len(teamB))
	deltas := make([]PlayerDelta, 0, len(teamA)+len(teamB))

	add := func(id string, played int) int {
		if i, ok := index[id]; ok {
			return i
		}
		deltas = append(deltas, PlayerDelta{PlayerID: id, MatchesPlayed: played})
		index[id] = len(deltas) - 1
		return len(deltas) - 1
	}

	for _, id := range teamA {
		add(id, 1)
	}
	for _, id := range teamB {
		add(id, 1)
	}

	var orphans []string
	for _, e := range events {
		if _, ok := index[e.ScorerID]; !ok {
			orphans = append(orphans, e.ScorerID)
		}
		if e.AssistID != "" {
			if _, ok := index[e.AssistID]; !ok {
				orphans = append(orphans, e.AssistID)
			}
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		add(id, 0)
	}

	for _, e := range events {
		deltas[index[e.ScorerID]].Goals++
		if e.AssistID != "" {
			deltas[index[e.AssistID]].Assists++
		}
	}

	return deltas
}
