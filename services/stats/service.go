// Package stats serves read-only aggregates over stored players and
// matches. Counters are read as written by the match commit; nothing here
// recomputes them from event logs.
package stats

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"github.com/minifoot/minifoot-api/pkg/aggregate"
	"github.com/minifoot/minifoot-api/repos/store"
)

// ErrUnknownMetric is returned for a leaderboard metric that is not a
// player counter.
var ErrUnknownMetric = xerrors.New("unknown metric")

// Store is the slice of the data-access service this package needs.
type Store interface {
	ListPlayers(ctx context.Context) ([]store.Player, error)
	CountMatches(ctx context.Context) (int, error)
	WatchPlayers(ctx context.Context) <-chan []store.Player
}

type StatsService struct {
	store Store
	log   zerolog.Logger
}

func NewStatsService(store Store, log zerolog.Logger) *StatsService {
	return &StatsService{
		store: store,
		log:   log.With().Str("component", "stats").Logger(),
	}
}

func (s *StatsService) Dashboard(ctx context.Context) (Dashboard, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	matchCount, err := s.store.CountMatches(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		TotalMatches: matchCount,
		TotalGoals:   aggregate.TotalGoals(players),
	}
	if top, ok := aggregate.TopByMetric(players, aggregate.MetricGoals); ok {
		dashboard.TopScorer = summaryOf(top)
	}
	if top, ok := aggregate.TopByMetric(players, aggregate.MetricAssists); ok {
		dashboard.TopAssistant = summaryOf(top)
	}
	return dashboard, nil
}

// Leaderboard ranks every player by the given counter, descending, ties
// broken towards the smaller player ID.
func (s *StatsService) Leaderboard(ctx context.Context, metric aggregate.Metric) ([]PlayerSummary, error) {
	if !aggregate.ValidMetric(metric) {
		return nil, xerrors.Errorf("metric %q: %w", metric, ErrUnknownMetric)
	}

	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return rank(players, metric), nil
}

// WatchLeaderboard streams the ranked leaderboard, re-emitting whenever a
// player document changes. The channel closes when ctx is cancelled or the
// underlying snapshot stream ends.
func (s *StatsService) WatchLeaderboard(ctx context.Context, metric aggregate.Metric) (<-chan []PlayerSummary, error) {
	if !aggregate.ValidMetric(metric) {
		return nil, xerrors.Errorf("metric %q: %w", metric, ErrUnknownMetric)
	}

	updates := s.store.WatchPlayers(ctx)
	out := make(chan []PlayerSummary)

	go func() {
		defer close(out)
		for players := range updates {
			select {
			case out <- rank(players, metric):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func rank(players []store.Player, metric aggregate.Metric) []PlayerSummary {
	ranked := aggregate.Leaderboard(players, metric)
	summaries := make([]PlayerSummary, 0, len(ranked))
	for _, p := range ranked {
		summaries = append(summaries, *summaryOf(p))
	}
	return summaries
}

func summaryOf(p store.Player) *PlayerSummary {
	return &PlayerSummary{
		ID:            p.ID,
		Name:          p.Name,
		Nickname:      p.Nickname,
		Goals:         p.Goals,
		Assists:       p.Assists,
		MatchesPlayed: p.MatchesPlayed,
	}
}
