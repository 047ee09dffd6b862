package dashboard

import (
	"time"

	"ankidash/internal/domain"
)

// CalendarDay is one cell of the calendar intensity (heatmap) view.
type CalendarDay struct {
	Date          string
	TotalActivity int
	Band          int
}

// CalendarIntensity returns one entry per calendar day of year, January 1
// through December 31, with the day's activity volume discretized into
// six bands. Days absent from the index get band 0.
func CalendarIntensity(year int, idx domain.ActivityIndex, loc *time.Location) []CalendarDay {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	out := make([]CalendarDay, 0, 366)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateKeyLayout)
		total := idx.Day(key).TotalActivity
		out = append(out, CalendarDay{
			Date:          key,
			TotalActivity: total,
			Band:          intensityBand(total),
		})
	}
	return out
}

// intensityBand discretizes a day's activity volume into bands 0-5.
func intensityBand(total int) int {
	switch {
	case total <= 0:
		return 0
	case total <= 5:
		return 1
	case total <= 10:
		return 2
	case total <= 20:
		return 3
	case total <= 30:
		return 4
	default:
		return 5
	}
}
