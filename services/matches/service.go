package matches

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/minifoot/minifoot-api/pkg/aggregate"
	"github.com/minifoot/minifoot-api/pkg/datehelper"
	"github.com/minifoot/minifoot-api/pkg/matchlog"
	"github.com/minifoot/minifoot-api/pkg/metrics"
	"github.com/minifoot/minifoot-api/pkg/sharecode"
	"github.com/minifoot/minifoot-api/repos/resend"
	"github.com/minifoot/minifoot-api/repos/store"
)

var (
	ErrRosterOverlap  = errors.New("a player can only be on one team")
	ErrRosterTooSmall = errors.New("each team needs more players")
	ErrBadShareCode   = errors.New("share code is not valid")
)

// Store is the slice of the data-access service this package needs.
type Store interface {
	CommitMatch(ctx context.Context, match store.Match) (string, error)
	GetMatch(ctx context.Context, id string) (store.Match, error)
	ListMatches(ctx context.Context) ([]store.Match, error)
	ListPlayers(ctx context.Context) ([]store.Player, error)
	WatchMatches(ctx context.Context) <-chan []store.Match
}

// Mailer sends rendered match reports.
type Mailer interface {
	SendMatchReport(ctx context.Context, to string, report resend.Report) error
}

// Policy carries the commit-time validation knobs that were left implicit
// in the recorded flows and are explicit configuration here.
type Policy struct {
	MinRosterSize  int
	SameTeamAssist bool
}

type MatchesService struct {
	store   Store
	mailer  Mailer
	metrics *metrics.Metrics
	policy  Policy
	log     zerolog.Logger
}

func NewMatchesService(store Store, mailer Mailer, metrics *metrics.Metrics, policy Policy, log zerolog.Logger) *MatchesService {
	if policy.MinRosterSize < 1 {
		policy.MinRosterSize = 1
	}
	return &MatchesService{
		store:   store,
		mailer:  mailer,
		metrics: metrics,
		policy:  policy,
		log:     log.With().Str("component", "matches").Logger(),
	}
}

// CommitMatch validates a finished builder payload and persists it through
// the store's single-transaction commit. Validation failures never reach
// the store; persistence failures leave nothing behind.
func (s *MatchesService) CommitMatch(ctx context.Context, request CommitMatchRequest) (string, error) {
	if len(request.TeamAPlayers) < s.policy.MinRosterSize ||
		len(request.TeamBPlayers) < s.policy.MinRosterSize {
		return "", ErrRosterTooSmall
	}
	if overlaps(request.TeamAPlayers, request.TeamBPlayers) {
		return "", ErrRosterOverlap
	}

	events := make([]matchlog.Event, 0, len(request.Events))
	for _, e := range request.Events {
		event, err := matchlog.ValidateEvent(
			matchlog.Event{ScorerID: e.ScorerID, AssistID: e.AssistID},
			request.TeamAPlayers, request.TeamBPlayers,
		)
		if err != nil {
			return "", err
		}
		if s.policy.SameTeamAssist && event.AssistID != "" && !sameTeam(request, event) {
			return "", matchlog.ErrCrossAssist
		}
		events = append(events, event)
	}

	match := store.Match{
		TeamAPlayers: request.TeamAPlayers,
		TeamBPlayers: request.TeamBPlayers,
		Events:       events,
		DateString:   datehelper.TodayString(),
	}
	if request.League != nil {
		match.League = *request.League
	}
	if request.TeamAName != nil {
		match.TeamAName = *request.TeamAName
	}
	if request.TeamBName != nil {
		match.TeamBName = *request.TeamBName
	}
	if request.IsLive != nil {
		match.IsLive = *request.IsLive
	}

	id, err := s.store.CommitMatch(ctx, match)
	if err != nil {
		s.metrics.CommitFailures.Inc()
		return "", err
	}

	s.metrics.MatchesCommitted.Inc()
	s.metrics.GoalsRecorded.Add(float64(len(events)))
	return id, nil
}

// GetMatch returns one match with its derived scoreboard and resolved
// display names.
func (s *MatchesService) GetMatch(ctx context.Context, id string) (MatchDetail, error) {
	match, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return MatchDetail{}, err
	}

	names, err := s.playerNames(ctx)
	if err != nil {
		return MatchDetail{}, err
	}
	return toDetail(match, names), nil
}

// ListMatches returns all matches grouped by calendar date, newest day
// first, order within a day following the store's most-recent-first feed.
func (s *MatchesService) ListMatches(ctx context.Context) ([]DayGroup, error) {
	matchList, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}

	return groupDetails(matchList, names), nil
}

// Watch streams the grouped match list, re-emitting on every store
// change. The channel closes when ctx is cancelled or the underlying
// snapshot stream ends.
func (s *MatchesService) Watch(ctx context.Context) <-chan []DayGroup {
	updates := s.store.WatchMatches(ctx)
	out := make(chan []DayGroup)

	go func() {
		defer close(out)
		for matchList := range updates {
			names, err := s.playerNames(ctx)
			if err != nil {
				s.log.Warn().Err(err).Msg("Skipping live update, could not resolve names")
				continue
			}

			select {
			case out <- groupDetails(matchList, names):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Share returns an opaque code for a shareable link to the match.
func (s *MatchesService) Share(ctx context.Context, id string) (string, error) {
	if _, err := s.store.GetMatch(ctx, id); err != nil {
		return "", err
	}
	return sharecode.Generate(id), nil
}

// Resolve turns a share code back into the match detail it points at.
func (s *MatchesService) Resolve(ctx context.Context, code string) (MatchDetail, error) {
	matchID, _, err := sharecode.Decode(code)
	if err != nil {
		return MatchDetail{}, ErrBadShareCode
	}
	return s.GetMatch(ctx, matchID)
}

// SendReport mails a summary of a committed match.
func (s *MatchesService) SendReport(ctx context.Context, id, email string) error {
	detail, err := s.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	report := resend.Report{
		MatchID:    detail.ID,
		DateString: detail.DateString,
		TeamAName:  teamNameOr(detail.TeamAName, "Team A"),
		TeamBName:  teamNameOr(detail.TeamBName, "Team B"),
		ScoreA:     detail.ScoreA,
		ScoreB:     detail.ScoreB,
	}
	for _, e := range detail.Events {
		report.Goals = append(report.Goals, resend.GoalLine{
			Team:       string(e.Team),
			ScorerName: e.ScorerName,
			AssistName: e.AssistName,
		})
	}

	if err := s.mailer.SendMatchReport(ctx, email, report); err != nil {
		return err
	}
	s.log.Info().Str("match_id", id).Msg("Match report requested")
	return nil
}

func (s *MatchesService) playerNames(ctx context.Context) (map[string]string, error) {
	playerList, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(playerList))
	for _, p := range playerList {
		names[p.ID] = p.Name
	}
	return names, nil
}

func groupDetails(matchList []store.Match, names map[string]string) []DayGroup {
	grouped := aggregate.GroupMatchesByDate(matchList)
	groups := make([]DayGroup, 0, len(grouped))
	for _, date := range aggregate.DateKeys(matchList) {
		group := DayGroup{Date: date}
		for _, match := range grouped[date] {
			group.Matches = append(group.Matches, toDetail(match, names))
		}
		groups = append(groups, group)
	}
	return groups
}

func toDetail(match store.Match, names map[string]string) MatchDetail {
	scoreA, scoreB := aggregate.Scoreboard(match)
	detail := MatchDetail{
		ID:           match.ID,
		DateString:   match.DateString,
		TeamAPlayers: match.TeamAPlayers,
		TeamBPlayers: match.TeamBPlayers,
		TeamAName:    match.TeamAName,
		TeamBName:    match.TeamBName,
		League:       match.League,
		IsLive:       match.IsLive,
		ScoreA:       scoreA,
		ScoreB:       scoreB,
	}
	for _, e := range match.Events {
		// A deleted player resolves to an empty name on purpose.
		view := EventView{
			Team:       e.Team,
			ScorerID:   e.ScorerID,
			ScorerName: names[e.ScorerID],
			AssistID:   e.AssistID,
		}
		if e.AssistID != "" {
			view.AssistName = names[e.AssistID]
		}
		detail.Events = append(detail.Events, view)
	}
	return detail
}

func overlaps(teamA, teamB []string) bool {
	inA := make(map[string]bool, len(teamA))
	for _, id := range teamA {
		inA[id] = true
	}
	for _, id := range teamB {
		if inA[id] {
			return true
		}
	}
	return false
}

func sameTeam(request CommitMatchRequest, event matchlog.Event) bool {
	members := request.TeamAPlayers
	if event.Team == matchlog.TeamB {
		members = request.TeamBPlayers
	}
	for _, id := range members {
		if id == event.AssistID {
			return true
		}
	}
	return false
}

func teamNameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
