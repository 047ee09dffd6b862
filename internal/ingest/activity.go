package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"ankidash/internal/domain"
)

// The exporter has written events with both snake_case and camelCase note
// identifiers; accept either.
type rawEvent struct {
	NoteID      string `json:"note_id"`
	NoteIDCamel string `json:"noteId"`
	DeckName    string `json:"deck_name"`
	Timestamp   string `json:"timestamp"`
}

func (e rawEvent) noteID() string {
	if e.NoteID != "" {
		return e.NoteID
	}
	return e.NoteIDCamel
}

type rawLevelChange struct {
	NoteID        string `json:"note_id"`
	NoteIDCamel   string `json:"noteId"`
	DeckName      string `json:"deck_name"`
	PreviousLevel string `json:"previous_level"`
	NewLevel      string `json:"new_level"`
}

type rawDay struct {
	Reviews      []rawEvent       `json:"reviews"`
	NewStudies   []rawEvent       `json:"new_studies"`
	LevelChanges []rawLevelChange `json:"level_changes"`
}

// ParseActivity parses the cumulative activity history into a date-keyed
// index. Both log shapes are accepted: the full form with the day map
// nested under "daily_activity" (plus metadata), and a bare date map.
// Empty input yields an empty index. A malformed day entry is skipped
// with a warning; it never aborts the parse.
func ParseActivity(log *slog.Logger, data []byte) (domain.ActivityIndex, error) {
	idx := domain.ActivityIndex{}
	if len(bytes.TrimSpace(data)) == 0 {
		return idx, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode activity history: %w", err)
	}

	days := top
	if nested, ok := top["daily_activity"]; ok {
		days = map[string]json.RawMessage{}
		if err := json.Unmarshal(nested, &days); err != nil {
			return nil, fmt.Errorf("decode daily_activity: %w", err)
		}
	}

	for date, raw := range days {
		if !isDateKey(date) {
			// Metadata keys (last_updated, total_days_tracked, ...) ride
			// alongside the day map in the bare shape.
			continue
		}
		var day rawDay
		if err := json.Unmarshal(raw, &day); err != nil {
			log.Warn("skipping malformed activity day",
				slog.String("date", date),
				slog.String("error", err.Error()),
			)
			continue
		}
		idx[date] = normalizeDay(date, day)
	}

	return idx, nil
}

func normalizeDay(date string, day rawDay) domain.DailyActivity {
	out := domain.DailyActivity{Date: date}
	for _, ev := range day.Reviews {
		out.Reviews = append(out.Reviews, domain.ReviewEvent{
			NoteID:    ev.noteID(),
			GroupName: ev.DeckName,
			Timestamp: ev.Timestamp,
		})
	}
	for _, ev := range day.NewStudies {
		out.NewStudies = append(out.NewStudies, domain.ReviewEvent{
			NoteID:    ev.noteID(),
			GroupName: ev.DeckName,
			Timestamp: ev.Timestamp,
		})
	}
	for _, lc := range day.LevelChanges {
		noteID := lc.NoteID
		if noteID == "" {
			noteID = lc.NoteIDCamel
		}
		out.LevelChanges = append(out.LevelChanges, domain.LevelChange{
			NoteID:        noteID,
			GroupName:     lc.DeckName,
			PreviousLevel: domain.ParseCardLevel(lc.PreviousLevel),
			NewLevel:      domain.ParseCardLevel(lc.NewLevel),
		})
	}
	// Level changes describe state transitions, not study effort; they do
	// not count toward the day's activity volume.
	out.TotalActivity = len(out.Reviews) + len(out.NewStudies)
	return out
}

// isDateKey reports whether s looks like a YYYY-MM-DD key.
func isDateKey(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
