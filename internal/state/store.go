package state

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"ankidash/internal/domain"
)

// ChangeCategory classifies what part of the state an update touched, so
// views can subscribe to just the changes they care about.
type ChangeCategory string

const (
	// CategoryFilter covers every FilterSpec mutation.
	CategoryFilter ChangeCategory = "filter"
	// CategoryPreference covers theme and language.
	CategoryPreference ChangeCategory = "preference"
	// CategorySelection covers view selections (time window, calendar
	// year, table settings).
	CategorySelection ChangeCategory = "selection"
	// CategoryAny receives every change, whatever its category.
	CategoryAny ChangeCategory = "any"
)

// Change is delivered to subscribers after a state mutation.
type Change struct {
	Previous ApplicationState
	New      ApplicationState
	Category ChangeCategory
}

// Subscriber receives state changes. Delivery is synchronous and in
// subscription order; a subscriber must not call back into the store's
// mutating methods (the update that triggered it has not finished yet).
type Subscriber func(Change)

// Storage is the durable keyed blob store behind the Store.
type Storage interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

// DefaultStateKey is the storage key the dashboard state is saved under.
const DefaultStateKey = "dashboard_state"

type subscription struct {
	id uuid.UUID
	fn Subscriber
}

// Store is the single owner of the ApplicationState. Every mutation runs
// to completion (merge, persist, notify) before the next one starts.
type Store struct {
	log     *slog.Logger
	storage Storage
	key     string

	mu    sync.Mutex
	state ApplicationState
	subs  map[ChangeCategory][]subscription
}

// NewStore loads the persisted state from storage, merging it over the
// defaults so fields added since the blob was written get sane values.
// A missing, unreadable or corrupted blob falls back to defaults; it is
// never fatal.
func NewStore(log *slog.Logger, storage Storage, key string, now time.Time) *Store {
	if key == "" {
		key = DefaultStateKey
	}
	s := &Store{
		log:     log,
		storage: storage,
		key:     key,
		state:   DefaultState(now),
		subs:    make(map[ChangeCategory][]subscription),
	}

	blob, ok, err := storage.Load(key)
	if err != nil {
		log.Warn("loading persisted state failed, using defaults", slog.String("error", err.Error()))
		return s
	}
	if !ok {
		return s
	}
	restored := DefaultState(now)
	if err := json.Unmarshal(blob, &restored); err != nil {
		log.Warn("persisted state is corrupted, using defaults", slog.String("error", err.Error()))
		return s
	}
	restored.sanitize(DefaultState(now))
	s.state = restored
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() ApplicationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update applies mutate to a copy of the current state. If the result is
// structurally identical to the prior state the update is a no-op: no
// persistence, no notification. Otherwise the new state is persisted
// first and then delivered to the category's subscribers plus the
// CategoryAny subscribers. Returns whether anything changed.
func (s *Store) Update(category ChangeCategory, mutate func(*ApplicationState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.state.Clone()
	next := s.state.Clone()
	mutate(&next)

	if reflect.DeepEqual(previous, next) {
		return false
	}

	s.state = next
	s.persist()

	change := Change{Previous: previous, New: next.Clone(), Category: category}
	for _, sub := range s.subs[category] {
		sub.fn(change)
	}
	if category != CategoryAny {
		for _, sub := range s.subs[CategoryAny] {
			sub.fn(change)
		}
	}
	return true
}

// persist writes the full state. Failures are logged and swallowed: the
// in-memory state stays authoritative and durability is best effort.
// Caller holds mu.
func (s *Store) persist() {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("encoding state failed", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Save(s.key, blob); err != nil {
		s.log.Warn("persisting state failed", slog.String("error", err.Error()))
	}
}

// Subscribe registers fn for a change category and returns an
// unsubscribe handle.
func (s *Store) Subscribe(category ChangeCategory, fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.subs[category] = append(s.subs[category], subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[category]
		for i, sub := range subs {
			if sub.id == id {
				s.subs[category] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// ToggleGroup adds the group to the filter selection, or removes it when
// already selected.
func (s *Store) ToggleGroup(name string) bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters.SelectedGroups = toggle(st.Filters.SelectedGroups, name)
	})
}

// ToggleLevel adds the level to the filter selection, or removes it when
// already selected.
func (s *Store) ToggleLevel(level domain.CardLevel) bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters.SelectedLevels = toggle(st.Filters.SelectedLevels, level)
	})
}

// SetSearchQuery replaces the free-text filter.
func (s *Store) SetSearchQuery(query string) bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters.SearchQuery = query
	})
}

// SetDateRange replaces the date-range filter; nil clears it.
func (s *Store) SetDateRange(r *domain.DateRange) bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters.DateRange = r
	})
}

// SetStatFilter replaces the exclusive stat-based filter.
func (s *Store) SetStatFilter(f domain.StatFilter) bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters.StatFilter = f
	})
}

// ResetFilters restores every filter dimension to its default while
// leaving preferences and view selections untouched.
func (s *Store) ResetFilters() bool {
	return s.Update(CategoryFilter, func(st *ApplicationState) {
		st.Filters = domain.FilterSpec{}
	})
}

// SetTheme updates the display theme preference.
func (s *Store) SetTheme(theme domain.Theme) bool {
	return s.Update(CategoryPreference, func(st *ApplicationState) {
		st.Theme = theme
	})
}

// SetLanguage updates the UI language preference.
func (s *Store) SetLanguage(lang domain.Language) bool {
	return s.Update(CategoryPreference, func(st *ApplicationState) {
		st.Language = lang
	})
}

// SetTimeWindow selects the time-series window.
func (s *Store) SetTimeWindow(w domain.TimeWindow) bool {
	return s.Update(CategorySelection, func(st *ApplicationState) {
		st.View.TimeWindow = w
	})
}

// SetCalendarYear selects the calendar intensity year.
func (s *Store) SetCalendarYear(year int) bool {
	return s.Update(CategorySelection, func(st *ApplicationState) {
		st.View.CalendarYear = year
	})
}

func toggle[T comparable](set []T, v T) []T {
	for i, cur := range set {
		if cur == v {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, v)
}
