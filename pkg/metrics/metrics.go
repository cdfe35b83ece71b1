// Package metrics exposes the service's Prometheus counters on a private
// registry, served at /metrics.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	MatchesCommitted prometheus.Counter
	GoalsRecorded    prometheus.Counter
	PlayersCreated   prometheus.Counter
	CommitFailures   prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		MatchesCommitted: auto.NewCounter(prometheus.CounterOpts{
			Name: "minifoot_matches_committed_total",
			Help: "Matches committed to the store.",
		}),
		GoalsRecorded: auto.NewCounter(prometheus.CounterOpts{
			Name: "minifoot_goals_recorded_total",
			Help: "Goal events persisted across all committed matches.",
		}),
		PlayersCreated: auto.NewCounter(prometheus.CounterOpts{
			Name: "minifoot_players_created_total",
			Help: "Players created.",
		}),
		CommitFailures: auto.NewCounter(prometheus.CounterOpts{
			Name: "minifoot_commit_failures_total",
			Help: "Match commits that failed and were rolled back.",
		}),
	}
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
