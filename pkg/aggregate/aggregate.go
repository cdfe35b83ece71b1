// Package aggregate derives read-only views from stored players and
// matches: scoreboards, leaderboards and date grouping. Nothing here
// mutates source data; counter increments happen only inside the store's
// match commit.
package aggregate

import (
	"sort"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
	"github.com/minifoot/minifoot-api/repos/store"
)

// Metric names a player counter a leaderboard can rank by.
type Metric string

const (
	MetricGoals   Metric = "goals"
	MetricAssists Metric = "assists"
)

func ValidMetric(m Metric) bool {
	return m == MetricGoals || m == MetricAssists
}

func metricValue(p store.Player, metric Metric) int {
	if metric == MetricAssists {
		return p.Assists
	}
	return p.Goals
}

// Scoreboard folds a match's event log into the two team scores.
func Scoreboard(match store.Match) (scoreA, scoreB int) {
	return matchlog.ScoreFor(match.Events, matchlog.TeamA),
		matchlog.ScoreFor(match.Events, matchlog.TeamB)
}

// TopByMetric returns the player with the highest value of the given
// counter. Ties break towards the smallest player ID so identical input
// always yields the same leader, regardless of query order. The second
// return is false for an empty collection.
func TopByMetric(players []store.Player, metric Metric) (store.Player, bool) {
	var top store.Player
	found := false
	for _, p := range players {
		if !found {
			top, found = p, true
			continue
		}
		v, tv := metricValue(p, metric), metricValue(top, metric)
		if v > tv || (v == tv && p.ID < top.ID) {
			top = p
		}
	}
	return top, found
}

// Leaderboard ranks all players by the metric, descending, ties broken by
// player ID. The input slice is not modified.
func Leaderboard(players []store.Player, metric Metric) []store.Player {
	ranked := append([]store.Player(nil), players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metricValue(ranked[i], metric), metricValue(ranked[j], metric)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// TotalGoals sums the goals counter over the player aggregate. It equals
// the total event count across all matches only if every commit applied its
// increments, which the transactional commit guarantees.
func TotalGoals(players []store.Player) int {
	total := 0
	for _, p := range players {
		total += p.Goals
	}
	return total
}

// GroupMatchesByDate partitions matches by their stored date string. Every
// match lands in exactly one bucket and buckets preserve input order, so a
// most-recent-first input stays most-recent-first per day.
func GroupMatchesByDate(matches []store.Match) map[string][]store.Match {
	grouped := make(map[string][]store.Match, len(matches))
	for _, m := range matches {
		grouped[m.DateString] = append(grouped[m.DateString], m)
	}
	return grouped
}

// DateKeys returns the group keys in first-seen order of the input, which
// for a most-recent-first match list means newest day first.
func DateKeys(matches []store.Match) []string {
	var keys []string
	seen := map[string]bool{}
	for _, m := range matches {
		if !seen[m.DateString] {
			seen[m.DateString] = true
			keys = append(keys, m.DateString)
		}
	}
	return keys
}
