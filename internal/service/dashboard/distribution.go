package dashboard

import (
	"sort"

	"ankidash/internal/domain"
)

// GroupStats is the per-group (deck) breakdown of a record set.
type GroupStats struct {
	Name        string
	Total       int
	LevelCounts map[domain.CardLevel]int
}

// LevelDistribution counts records per maturity level. Every record lands
// in exactly one bucket.
func LevelDistribution(records []domain.CardRecord) map[domain.CardLevel]int {
	dist := make(map[domain.CardLevel]int)
	for _, rec := range records {
		level := rec.Level
		if level == "" {
			level = domain.LevelUnknown
		}
		dist[level]++
	}
	return dist
}

// GroupPerformance breaks the record set down per distinct group name,
// sorted by total descending. Ties keep the order groups first appeared
// in the input.
func GroupPerformance(records []domain.CardRecord) []GroupStats {
	byName := make(map[string]int)
	var out []GroupStats
	for _, rec := range records {
		i, ok := byName[rec.GroupName]
		if !ok {
			i = len(out)
			byName[rec.GroupName] = i
			out = append(out, GroupStats{
				Name:        rec.GroupName,
				LevelCounts: make(map[domain.CardLevel]int),
			})
		}
		out[i].Total++
		level := rec.Level
		if level == "" {
			level = domain.LevelUnknown
		}
		out[i].LevelCounts[level]++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}
