package domain

import (
	"strings"
	"time"
)

// GroupSeparator splits a hierarchical group (deck) name into segments.
const GroupSeparator = "::"

// CardRecord is the normalized snapshot of one flashcard from the export.
type CardRecord struct {
	NoteID         string
	Level          CardLevel
	GroupName      string
	GroupPath      []string
	FirstStudyDate *time.Time
	LastReviewDate *time.Time
	FrontText      string
	BackText       string
	ExtraFields    map[string]any

	// Derived at normalization time.
	DaysSinceFirstStudy *int
	DaysSinceLastReview *int
	IsOverdue           bool
}

// ActivityDate returns the date a record is filtered against: the last
// review when present, otherwise the first study date. Nil means the card
// has never been touched.
func (c *CardRecord) ActivityDate() *time.Time {
	if c.LastReviewDate != nil {
		return c.LastReviewDate
	}
	return c.FirstStudyDate
}

// MatchesText reports whether the query occurs in the front or back text,
// case-insensitively. An empty query matches everything.
func (c *CardRecord) MatchesText(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.FrontText), q) ||
		strings.Contains(strings.ToLower(c.BackText), q)
}

// SplitGroupPath splits a hierarchical group name into its segments.
// An empty name yields no segments.
func SplitGroupPath(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, GroupSeparator)
}
