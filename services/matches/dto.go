package matches

import "github.com/minifoot/minifoot-api/pkg/matchlog"

// EventRequest is one goal in a commit payload. The team indicator is
// re-derived server-side from roster membership; a stored team that
// disagrees with membership is rejected rather than trusted.
type EventRequest struct {
	ScorerID string `json:"scorerId" binding:"required"`
	AssistID string `json:"assistId"`
}

// CommitMatchRequest is the payload of a finished match builder: both
// rosters and the accumulated goal log, plus the optional extras some
// matches carry. Optional fields are pointers so absent and empty stay
// distinguishable.
type CommitMatchRequest struct {
	TeamAPlayers []string       `json:"teamAPlayers" binding:"required"`
	TeamBPlayers []string       `json:"teamBPlayers" binding:"required"`
	Events       []EventRequest `json:"events"`

	League    *string `json:"league"`
	TeamAName *string `json:"teamAName"`
	TeamBName *string `json:"teamBName"`
	IsLive    *bool   `json:"isLive"`
}

// EventView is one goal with display names resolved. A deleted player
// renders as an empty name, never an error.
type EventView struct {
	Team       matchlog.Team `json:"team"`
	ScorerID   string        `json:"scorerId"`
	ScorerName string        `json:"scorerName"`
	AssistID   string        `json:"assistId,omitempty"`
	AssistName string        `json:"assistName,omitempty"`
}

// MatchDetail is a stored match with its derived scoreboard.
type MatchDetail struct {
	ID           string      `json:"id"`
	DateString   string      `json:"dateString"`
	TeamAPlayers []string    `json:"teamAPlayers"`
	TeamBPlayers []string    `json:"teamBPlayers"`
	TeamAName    string      `json:"teamAName,omitempty"`
	TeamBName    string      `json:"teamBName,omitempty"`
	League       string      `json:"league,omitempty"`
	IsLive       bool        `json:"isLive,omitempty"`
	ScoreA       int         `json:"scoreA"`
	ScoreB       int         `json:"scoreB"`
	Events       []EventView `json:"events"`
}

// DayGroup is one date bucket of the grouped match list.
type DayGroup struct {
	Date    string        `json:"date"`
	Matches []MatchDetail `json:"matches"`
}
