package stats

// PlayerSummary is one leaderboard row.
type PlayerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Nickname      string `json:"nickname,omitempty"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

// Dashboard is the landing-page statistics block.
type Dashboard struct {
	TotalMatches int            `json:"totalMatches"`
	TotalGoals   int            `json:"totalGoals"`
	TopScorer    *PlayerSummary `json:"topScorer,omitempty"`
	TopAssistant *PlayerSummary `json:"topAssistant,omitempty"`
}
