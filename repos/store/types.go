package store

import (
	"time"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
)

// Player is a stored player document. Field names must not drift: existing
// deployments already hold documents in this shape. Counters only ever move
// through CommitMatch increments, never through a direct edit.
type Player struct {
	ID            string    `firestore:"-" json:"id"`
	Name          string    `firestore:"name" json:"name" validate:"required"`
	Nickname      string    `firestore:"nickname" json:"nickname"`
	Position      string    `firestore:"position" json:"position"`
	PhotoURL      string    `firestore:"photoUrl,omitempty" json:"photoUrl,omitempty" validate:"omitempty,url"`
	Goals         int       `firestore:"goals" json:"goals" validate:"gte=0"`
	Assists       int       `firestore:"assists" json:"assists" validate:"gte=0"`
	MatchesPlayed int       `firestore:"matchesPlayed" json:"matchesPlayed" validate:"gte=0"`
	CreatedAt     time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Match is a stored match document: two disjoint rosters, the ordered goal
// log, and the grouping date string. Written once by CommitMatch and never
// updated afterwards.
type Match struct {
	ID           string           `firestore:"-" json:"id"`
	TeamAPlayers []string         `firestore:"teamAPlayers" json:"teamAPlayers" validate:"min=1"`
	TeamBPlayers []string         `firestore:"teamBPlayers" json:"teamBPlayers" validate:"min=1"`
	Events       []matchlog.Event `firestore:"events" json:"events" validate:"dive"`
	Date         time.Time        `firestore:"date,serverTimestamp" json:"date"`
	DateString   string           `firestore:"dateString" json:"dateString" validate:"required"`
	CreatedAt    time.Time        `firestore:"createdAt,serverTimestamp" json:"createdAt"`

	// Optional extras carried by some documents.
	IsLive    bool   `firestore:"isLive,omitempty" json:"isLive,omitempty"`
	League    string `firestore:"league,omitempty" json:"league,omitempty"`
	TeamAName string `firestore:"teamAName,omitempty" json:"teamAName,omitempty"`
	TeamBName string `firestore:"teamBName,omitempty" json:"teamBName,omitempty"`
}
