// Package resend mails match reports through the Resend API.
package resend

import (
	"context"
	"fmt"
	"html"
	"strings"

	resend "github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type Service struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

func NewService(apiKey, from string, log zerolog.Logger) *Service {
	return &Service{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log.With().Str("component", "resend").Logger(),
	}
}

// SendMatchReport mails a rendered match summary. Failure is returned to the
// caller; the match itself is already committed and unaffected.
func (s *Service) SendMatchReport(ctx context.Context, to string, report Report) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Match report %s: %s %d - %d %s", report.DateString, report.TeamAName, report.ScoreA, report.ScoreB, report.TeamBName),
		Html:    renderReport(report),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.log.Error().Err(err).Str("match_id", report.MatchID).Msg("Failed to send match report")
		return err
	}
	s.log.Info().Str("match_id", report.MatchID).Msg("Match report sent")
	return nil
}

func renderReport(report Report) string {
	var goals strings.Builder
	for _, g := range report.Goals {
		line := fmt.Sprintf("%s &#9917; %s", g.Team, html.EscapeString(g.ScorerName))
		if g.AssistName != "" {
			line += fmt.Sprintf(" (assist: %s)", html.EscapeString(g.AssistName))
		}
		goals.WriteString("<li>" + line + "</li>")
	}
	goalList := goals.String()
	if goalList == "" {
		goalList = "<li>No goals recorded</li>"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .score {
            font-size: 28px;
            text-align: center;
            margin: 16px 0;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>%s</h2>
        <div class="score">%s %d : %d %s</div>
        <ul>%s</ul>
    </div>
</body>
</html>`,
		html.EscapeString(report.DateString),
		html.EscapeString(report.TeamAName), report.ScoreA,
		report.ScoreB, html.EscapeString(report.TeamBName),
		goalList,
	)
}
