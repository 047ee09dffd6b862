// Package ingest parses the raw card export and activity history into the
// normalized domain model. Pure functions: bytes in, domain structs out.
// No storage dependencies.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"ankidash/internal/domain"
)

// CardParseStats holds normalizer statistics for logging.
type CardParseStats struct {
	TotalRows int
	Skipped   int
	Produced  int
}

// Date layouts the exporter has produced over time.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseCards parses the tabular card export into CardRecords.
//
// A data row whose field count differs from the header is skipped with a
// warning; an unparseable date or extra-fields blob defaults the field and
// keeps the record. Only a missing header or missing note-id column is
// fatal. Derived fields (day counts, overdue flag) are computed against
// now in loc.
func ParseCards(log *slog.Logger, data []byte, now time.Time, loc *time.Location) ([]domain.CardRecord, CardParseStats, error) {
	var stats CardParseStats

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("%w: read export header: %v", domain.ErrMissingInput, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := lookup(cols, "note_id", "noteid", "nid"); !ok {
		return nil, stats, fmt.Errorf("%w: export has no note identifier column", domain.ErrMissingInput)
	}

	var records []domain.CardRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			stats.TotalRows++
			stats.Skipped++
			log.Warn("skipping malformed export row", slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}
		stats.TotalRows++
		if len(row) != len(header) {
			stats.Skipped++
			log.Warn("skipping export row with field count mismatch",
				slog.Int("line", line),
				slog.Int("fields", len(row)),
				slog.Int("want", len(header)),
			)
			continue
		}

		records = append(records, normalizeRow(log, cols, row, now, loc))
		stats.Produced++
	}

	return records, stats, nil
}

func normalizeRow(log *slog.Logger, cols map[string]int, row []string, now time.Time, loc *time.Location) domain.CardRecord {
	field := func(names ...string) string {
		if i, ok := lookup(cols, names...); ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	noteID := field("note_id", "noteid", "nid")
	groupName := field("deck_name", "group_name", "deck")

	// Level fallback chain: dedicated level column, then the exporter's
	// scheduler status. Anything unrecognized lands on Unknown.
	rawLevel := field("anki_level", "level")
	if rawLevel == "" {
		rawLevel = field("status")
	}
	level := domain.ParseCardLevel(rawLevel)

	firstStudy := parseDate(log, noteID, "first_study_date", field("first_study_date", "first_study"), loc)
	lastReview := parseDate(log, noteID, "last_review_date", field("last_review_date", "last_review"), loc)

	rec := domain.CardRecord{
		NoteID:         noteID,
		Level:          level,
		GroupName:      groupName,
		GroupPath:      domain.SplitGroupPath(groupName),
		FirstStudyDate: firstStudy,
		LastReviewDate: lastReview,
		FrontText:      field("front", "front_text", "finnish"),
		BackText:       field("back", "back_text", "translation"),
		ExtraFields:    parseExtraFields(log, noteID, field("fields", "extra_fields")),
	}

	if firstStudy != nil {
		d := daysBetween(*firstStudy, now, loc)
		rec.DaysSinceFirstStudy = &d
	}
	if lastReview != nil {
		d := daysBetween(*lastReview, now, loc)
		rec.DaysSinceLastReview = &d
		if limit := level.OverdueAfterDays(); limit > 0 && d > limit {
			rec.IsOverdue = true
		}
	}

	return rec
}

func lookup(cols map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := cols[name]; ok {
			return i, true
		}
	}
	return 0, false
}

func parseDate(log *slog.Logger, noteID, fieldName, raw string, loc *time.Location) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	log.Warn("unparseable date in export",
		slog.String("note_id", noteID),
		slog.String("field", fieldName),
		slog.String("value", raw),
	)
	return nil
}

func parseExtraFields(log *slog.Logger, noteID, raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		log.Warn("unparseable extra fields blob",
			slog.String("note_id", noteID),
			slog.String("error", err.Error()),
		)
		return map[string]any{}
	}
	return fields
}

// daysBetween returns the whole-day difference between two instants on
// the local calendar of loc.
func daysBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}
