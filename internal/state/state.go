// Package state owns the persisted application state: active filters,
// view selections and display preferences. A single Store instance is
// the only writer; every other component works on snapshots.
package state

import (
	"time"

	"ankidash/internal/domain"
)

// ViewPreferences holds the chart and table view selections.
type ViewPreferences struct {
	TimeWindow     domain.TimeWindow `json:"timeWindow"`
	CalendarYear   int               `json:"calendarYear"`
	TableSortField string            `json:"tableSortField"`
	TableSortOrder string            `json:"tableSortOrder"`
	TablePageSize  int               `json:"tablePageSize"`
}

// ApplicationState is the full persisted UI state.
type ApplicationState struct {
	Theme    domain.Theme      `json:"theme"`
	Language domain.Language   `json:"language"`
	Filters  domain.FilterSpec `json:"filters"`
	View     ViewPreferences   `json:"view"`
}

// DefaultState returns the state used on first load. The calendar year
// defaults to the year containing now.
func DefaultState(now time.Time) ApplicationState {
	return ApplicationState{
		Theme:    domain.ThemeDark,
		Language: domain.LanguageEnglish,
		Filters:  domain.FilterSpec{},
		View: ViewPreferences{
			TimeWindow:     domain.WindowWeek,
			CalendarYear:   now.Year(),
			TableSortField: "lastReviewDate",
			TableSortOrder: "desc",
			TablePageSize:  25,
		},
	}
}

// Clone returns a deep copy, so snapshots handed to subscribers cannot
// alias the store's own state.
func (s ApplicationState) Clone() ApplicationState {
	out := s
	if s.Filters.SelectedGroups != nil {
		out.Filters.SelectedGroups = append([]string(nil), s.Filters.SelectedGroups...)
	}
	if s.Filters.SelectedLevels != nil {
		out.Filters.SelectedLevels = append([]domain.CardLevel(nil), s.Filters.SelectedLevels...)
	}
	if s.Filters.DateRange != nil {
		dr := *s.Filters.DateRange
		if s.Filters.DateRange.Start != nil {
			start := *s.Filters.DateRange.Start
			dr.Start = &start
		}
		if s.Filters.DateRange.End != nil {
			end := *s.Filters.DateRange.End
			dr.End = &end
		}
		out.Filters.DateRange = &dr
	}
	return out
}

// sanitize replaces any enum field an older (or hand-edited) persisted
// blob left invalid with its default.
func (s *ApplicationState) sanitize(defaults ApplicationState) {
	if !s.Theme.IsValid() {
		s.Theme = defaults.Theme
	}
	if !s.Language.IsValid() {
		s.Language = defaults.Language
	}
	if !s.View.TimeWindow.IsValid() {
		s.View.TimeWindow = defaults.View.TimeWindow
	}
	if s.View.CalendarYear == 0 {
		s.View.CalendarYear = defaults.View.CalendarYear
	}
	if s.View.TablePageSize <= 0 {
		s.View.TablePageSize = defaults.View.TablePageSize
	}
	if !s.Filters.StatFilter.IsValid() {
		s.Filters.StatFilter = domain.StatFilterNone
	}
	levels := s.Filters.SelectedLevels[:0]
	for _, l := range s.Filters.SelectedLevels {
		if l.IsValid() {
			levels = append(levels, l)
		}
	}
	s.Filters.SelectedLevels = levels
}
