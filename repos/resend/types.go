package resend

// Report is the rendered summary of one committed match, mailed on request.
type Report struct {
	MatchID    string
	DateString string
	TeamAName  string
	TeamBName  string
	ScoreA     int
	ScoreB     int
	Goals      []GoalLine
}

// GoalLine is one goal as it appears in the report, with display names
// already resolved (a deleted player renders as an empty placeholder).
type GoalLine struct {
	Team       string
	ScorerName string
	AssistName string
}

// ReportRequest is the JSON payload asking for a match report email.
type ReportRequest struct {
	Email string `json:"email" binding:"required,email"`
}
