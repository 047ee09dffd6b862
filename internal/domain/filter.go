package domain

import "time"

// DateRange bounds a filter on a record's activity date. Either side may
// be nil (open-ended); both bounds are inclusive.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether t falls within the range, treating nil bounds
// as unbounded.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool { return r.Start == nil && r.End == nil }

// FilterSpec is the composable filter over the record set. All active
// dimensions combine conjunctively. Empty selections impose no
// restriction.
type FilterSpec struct {
	SelectedGroups []string    `json:"selectedGroups,omitempty"`
	SelectedLevels []CardLevel `json:"selectedLevels,omitempty"`
	SearchQuery    string      `json:"searchQuery,omitempty"`
	DateRange      *DateRange  `json:"dateRange,omitempty"`
	StatFilter     StatFilter  `json:"statFilter,omitempty"`
}

// IsZero reports whether no filter dimension is active.
func (s FilterSpec) IsZero() bool {
	return len(s.SelectedGroups) == 0 &&
		len(s.SelectedLevels) == 0 &&
		s.SearchQuery == "" &&
		(s.DateRange == nil || s.DateRange.IsZero()) &&
		(s.StatFilter == StatFilterNone || s.StatFilter == StatFilterAllCards)
}

// HasGroup reports whether the group selection includes name.
func (s FilterSpec) HasGroup(name string) bool {
	for _, g := range s.SelectedGroups {
		if g == name {
			return true
		}
	}
	return false
}

// HasLevel reports whether the level selection includes level.
func (s FilterSpec) HasLevel(level CardLevel) bool {
	for _, l := range s.SelectedLevels {
		if l == level {
			return true
		}
	}
	return false
}
