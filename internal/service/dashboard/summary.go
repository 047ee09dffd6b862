package dashboard

import (
	"math"
	"time"

	"ankidash/internal/domain"
)

// Summary holds the headline counters shown above the charts.
type Summary struct {
	TotalCards   int
	StudiedToday int
	NewToday     int
	NewThisWeek  int
	AverageDaily int
}

// ActivityStats summarizes the whole activity history, independent of any
// filter: how many days are tracked, how many saw study activity, and the
// per-active-day averages (rounded to one decimal, as the exporter
// reports them).
type ActivityStats struct {
	DaysTracked            int
	ActiveDays             int
	TotalReviews           int
	TotalNewStudies        int
	TotalLevelChanges      int
	UniqueGroups           int
	AverageDailyReviews    float64
	AverageDailyNewStudies float64
}

// SummaryStats computes the headline counters from the filtered record
// set and the activity index, anchored at now in loc.
//
// StudiedToday counts records last reviewed on the local calendar day of
// now. NewToday and NewThisWeek count first-study events (per occurrence,
// not per distinct record) for today and for the Monday-based current
// week. AverageDaily divides total activity by the number of days present
// in the index, rounded to nearest; an empty index yields 0.
func SummaryStats(records []domain.CardRecord, idx domain.ActivityIndex, now time.Time, loc *time.Location) Summary {
	s := Summary{TotalCards: len(records)}

	for _, rec := range records {
		if rec.LastReviewDate != nil && sameLocalDay(*rec.LastReviewDate, now, loc) {
			s.StudiedToday++
		}
	}

	s.NewToday = len(idx.Day(DateKey(now, loc)).NewStudies)
	for _, key := range weekDateKeys(now, loc) {
		s.NewThisWeek += len(idx.Day(key).NewStudies)
	}

	if len(idx) > 0 {
		total := 0
		for _, day := range idx {
			total += day.TotalActivity
		}
		s.AverageDaily = int(math.Round(float64(total) / float64(len(idx))))
	}

	return s
}

// ActivityTotals aggregates the full activity index.
func ActivityTotals(idx domain.ActivityIndex) ActivityStats {
	stats := ActivityStats{DaysTracked: len(idx)}

	groups := make(map[string]bool)
	for _, day := range idx {
		if day.TotalActivity > 0 {
			stats.ActiveDays++
		}
		stats.TotalReviews += len(day.Reviews)
		stats.TotalNewStudies += len(day.NewStudies)
		stats.TotalLevelChanges += len(day.LevelChanges)
		for _, ev := range day.Reviews {
			if ev.GroupName != "" {
				groups[ev.GroupName] = true
			}
		}
		for _, ev := range day.NewStudies {
			if ev.GroupName != "" {
				groups[ev.GroupName] = true
			}
		}
	}
	stats.UniqueGroups = len(groups)

	activeDays := stats.ActiveDays
	if activeDays == 0 {
		activeDays = 1
	}
	stats.AverageDailyReviews = roundTenth(float64(stats.TotalReviews) / float64(activeDays))
	stats.AverageDailyNewStudies = roundTenth(float64(stats.TotalNewStudies) / float64(activeDays))

	return stats
}

// Streak returns the current run of consecutive days with study activity,
// ending today, or yesterday when today has no activity yet.
func Streak(idx domain.ActivityIndex, now time.Time, loc *time.Location) int {
	day := DayStart(now, loc)
	if idx.Day(day.Format(dateKeyLayout)).TotalActivity == 0 {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for idx.Day(day.Format(dateKeyLayout)).TotalActivity > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
