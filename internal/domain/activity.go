package domain

import "sort"

// ReviewEvent is one review or first-study event from the activity log.
// Only NoteID is guaranteed; the exporter also records the group and a
// timestamp when it has them.
type ReviewEvent struct {
	NoteID    string
	GroupName string
	Timestamp string
}

// LevelChange records a card moving between maturity levels on a given day.
type LevelChange struct {
	NoteID        string
	GroupName     string
	PreviousLevel CardLevel
	NewLevel      CardLevel
}

// DailyActivity holds all recorded study events for one local calendar day.
type DailyActivity struct {
	Date          string
	Reviews       []ReviewEvent
	NewStudies    []ReviewEvent
	LevelChanges  []LevelChange
	TotalActivity int
}

// ActivityIndex maps local date keys (YYYY-MM-DD) to that day's activity.
type ActivityIndex map[string]DailyActivity

// Day returns the activity for a date key. Missing dates yield an empty
// DailyActivity for that date, never an error.
func (idx ActivityIndex) Day(date string) DailyActivity {
	if day, ok := idx[date]; ok {
		return day
	}
	return DailyActivity{Date: date}
}

// Dates returns every date key present in the index, sorted ascending.
// Keys are ISO dates, so lexicographic order is chronological order.
func (idx ActivityIndex) Dates() []string {
	dates := make([]string, 0, len(idx))
	for d := range idx {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// NewStudyNoteIDs returns the set of note IDs with a first-study event on
// any of the given dates.
func (idx ActivityIndex) NewStudyNoteIDs(dates ...string) map[string]bool {
	ids := make(map[string]bool)
	for _, date := range dates {
		for _, ev := range idx.Day(date).NewStudies {
			ids[ev.NoteID] = true
		}
	}
	return ids
}
