// Package dashboard computes the derived aggregates behind the dashboard
// views: level distributions, per-group breakdowns, time series, calendar
// intensity and summary counters, plus the record filter they consume.
// Every function is pure and treats empty input as an empty result.
//
// All day arithmetic is done on the viewer's local calendar: a day ends
// at local midnight, and a week starts on Monday at local midnight.
package dashboard

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey formats t as the local calendar date key used by the activity
// index.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// DayStart returns local midnight of the day containing now.
func DayStart(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns the most recent Monday at local midnight (the Monday
// of the current week when now is a Monday).
func WeekStart(now time.Time, loc *time.Location) time.Time {
	day := DayStart(now, loc)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// weekDateKeys returns the date keys from the current week's Monday
// through today, inclusive.
func weekDateKeys(now time.Time, loc *time.Location) []string {
	start := WeekStart(now, loc)
	end := DayStart(now, loc)
	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(dateKeyLayout))
	}
	return keys
}

func sameLocalDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}
