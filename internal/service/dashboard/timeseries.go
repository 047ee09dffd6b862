package dashboard

import (
	"fmt"
	"time"

	"ankidash/internal/domain"
)

// TimeBucket is one point of the time-series view.
type TimeBucket struct {
	Start      time.Time
	Label      string
	Reviews    int
	NewStudies int
}

// TimeSeries buckets the activity index over the selected window, ending
// at now: 7 daily buckets for a week, one calendar month of daily buckets,
// or one calendar year of weekly buckets. Missing dates count as zero.
// Labels follow the language preference at the window's granularity.
func TimeSeries(window domain.TimeWindow, idx domain.ActivityIndex, now time.Time, loc *time.Location, lang domain.Language) []TimeBucket {
	today := DayStart(now, loc)

	switch window {
	case domain.WindowMonth:
		start := today.AddDate(0, -1, 0).AddDate(0, 0, 1)
		return dailyBuckets(idx, start, today, loc, lang)
	case domain.WindowYear:
		start := today.AddDate(-1, 0, 0).AddDate(0, 0, 1)
		return weeklyBuckets(idx, start, today, loc, lang)
	default: // week
		return dailyBuckets(idx, today.AddDate(0, 0, -6), today, loc, lang)
	}
}

func dailyBuckets(idx domain.ActivityIndex, start, end time.Time, loc *time.Location, lang domain.Language) []TimeBucket {
	var out []TimeBucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := idx.Day(d.Format(dateKeyLayout))
		out = append(out, TimeBucket{
			Start:      d,
			Label:      dayLabel(d, lang),
			Reviews:    len(day.Reviews),
			NewStudies: len(day.NewStudies),
		})
	}
	return out
}

func weeklyBuckets(idx domain.ActivityIndex, start, end time.Time, loc *time.Location, lang domain.Language) []TimeBucket {
	var out []TimeBucket
	for ws := start; !ws.After(end); ws = ws.AddDate(0, 0, 7) {
		we := ws.AddDate(0, 0, 6)
		if we.After(end) {
			we = end
		}
		bucket := TimeBucket{Start: ws, Label: monthLabel(ws, lang)}
		for d := ws; !d.After(we); d = d.AddDate(0, 0, 1) {
			day := idx.Day(d.Format(dateKeyLayout))
			bucket.Reviews += len(day.Reviews)
			bucket.NewStudies += len(day.NewStudies)
		}
		out = append(out, bucket)
	}
	return out
}

func dayLabel(d time.Time, lang domain.Language) string {
	if lang == domain.LanguageFinnish {
		return fmt.Sprintf("%d.%d.", d.Day(), int(d.Month()))
	}
	return d.Format("Jan 2")
}

func monthLabel(d time.Time, lang domain.Language) string {
	if lang == domain.LanguageFinnish {
		return fmt.Sprintf("%d/%d", int(d.Month()), d.Year())
	}
	return d.Format("Jan 2006")
}
