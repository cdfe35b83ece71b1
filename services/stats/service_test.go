package stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minifoot/minifoot-api/pkg/aggregate"
	"github.com/minifoot/minifoot-api/repos/store"
)

type fakeStore struct {
	players    []store.Player
	matchCount int
}

func (f *fakeStore) ListPlayers(context.Context) ([]store.Player, error) {
	return f.players, nil
}

func (f *fakeStore) CountMatches(context.Context) (int, error) {
	return f.matchCount, nil
}

// WatchPlayers emits the current players once and closes, enough to
// assert the stream's shape.
func (f *fakeStore) WatchPlayers(context.Context) <-chan []store.Player {
	out := make(chan []store.Player, 1)
	out <- f.players
	close(out)
	return out
}

var _ Store = (*fakeStore)(nil)

func squad() []store.Player {
	return []store.Player{
		{ID: "p1", Name: "Karim", Goals: 5, Assists: 2, MatchesPlayed: 4},
		{ID: "p2", Name: "Omar", Goals: 3, Assists: 6, MatchesPlayed: 4},
		{ID: "p3", Name: "Yassine", Goals: 5, Assists: 1, MatchesPlayed: 3},
	}
}

func TestDashboard(t *testing.T) {
	f := &fakeStore{players: squad(), matchCount: 4}
	svc := NewStatsService(f, zerolog.New(io.Discard))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, dashboard.TotalMatches)
	assert.Equal(t, 13, dashboard.TotalGoals)
	require.NotNil(t, dashboard.TopScorer)
	assert.Equal(t, "p1", dashboard.TopScorer.ID, "goal tie breaks towards the smaller ID")
	require.NotNil(t, dashboard.TopAssistant)
	assert.Equal(t, "p2", dashboard.TopAssistant.ID)
}

func TestDashboardEmpty(t *testing.T) {
	svc := NewStatsService(&fakeStore{}, zerolog.New(io.Discard))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, dashboard.TotalMatches)
	assert.Zero(t, dashboard.TotalGoals)
	assert.Nil(t, dashboard.TopScorer)
	assert.Nil(t, dashboard.TopAssistant)
}

func TestLeaderboard(t *testing.T) {
	svc := NewStatsService(&fakeStore{players: squad()}, zerolog.New(io.Discard))

	ranked, err := svc.Leaderboard(context.Background(), aggregate.MetricGoals)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "p1", ranked[0].ID)
	assert.Equal(t, "p3", ranked[1].ID)
	assert.Equal(t, "p2", ranked[2].ID)
}

func TestLeaderboardUnknownMetric(t *testing.T) {
	svc := NewStatsService(&fakeStore{players: squad()}, zerolog.New(io.Discard))

	_, err := svc.Leaderboard(context.Background(), "saves")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestWatchLeaderboard(t *testing.T) {
	svc := NewStatsService(&fakeStore{players: squad()}, zerolog.New(io.Discard))

	updates, err := svc.WatchLeaderboard(context.Background(), aggregate.MetricAssists)
	require.NoError(t, err)

	ranked, ok := <-updates
	require.True(t, ok)
	require.Len(t, ranked, 3)
	assert.Equal(t, "p2", ranked[0].ID)

	_, ok = <-updates
	assert.False(t, ok, "channel closes when the store stream ends")

	_, err = svc.WatchLeaderboard(context.Background(), "saves")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestLeaderboardHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := NewStatsService(&fakeStore{players: squad()}, zerolog.New(io.Discard))
	NewHTTPHandler(HTTPOptions{Service: svc, Router: router.Group("/stats/v1")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/v1/leaderboard/assists", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"metric":"assists"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/v1/leaderboard/saves", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
