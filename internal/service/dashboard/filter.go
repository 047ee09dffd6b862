package dashboard

import (
	"time"

	"ankidash/internal/domain"
)

// FilterCards returns the records matching every active dimension of the
// filter spec. The selection preserves input order and never duplicates a
// record. The activity index is consulted only for the stat-based filter;
// now and loc anchor the "today" and "this week" predicates.
func FilterCards(records []domain.CardRecord, spec domain.FilterSpec, idx domain.ActivityIndex, now time.Time, loc *time.Location) []domain.CardRecord {
	groups := make(map[string]bool, len(spec.SelectedGroups))
	for _, g := range spec.SelectedGroups {
		groups[g] = true
	}
	levels := make(map[domain.CardLevel]bool, len(spec.SelectedLevels))
	for _, l := range spec.SelectedLevels {
		levels[l] = true
	}

	var statIDs map[string]bool
	switch spec.StatFilter {
	case domain.StatFilterNewToday:
		statIDs = idx.NewStudyNoteIDs(DateKey(now, loc))
	case domain.StatFilterNewThisWeek:
		statIDs = idx.NewStudyNoteIDs(weekDateKeys(now, loc)...)
	}

	out := make([]domain.CardRecord, 0, len(records))
	for _, rec := range records {
		if len(groups) > 0 && !groups[rec.GroupName] {
			continue
		}
		if len(levels) > 0 && !levels[rec.Level] {
			continue
		}
		if !rec.MatchesText(spec.SearchQuery) {
			continue
		}
		if spec.DateRange != nil && !spec.DateRange.IsZero() {
			date := rec.ActivityDate()
			if date == nil || !spec.DateRange.Contains(*date) {
				continue
			}
		}
		if !matchesStatFilter(rec, spec.StatFilter, statIDs, now, loc) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesStatFilter(rec domain.CardRecord, f domain.StatFilter, statIDs map[string]bool, now time.Time, loc *time.Location) bool {
	switch f {
	case domain.StatFilterNewToday, domain.StatFilterNewThisWeek:
		return statIDs[rec.NoteID]
	case domain.StatFilterStudiedToday:
		return rec.LastReviewDate != nil && sameLocalDay(*rec.LastReviewDate, now, loc)
	}
	// None and AllCards impose no restriction.
	return true
}
