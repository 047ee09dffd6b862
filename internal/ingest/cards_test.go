package ingest

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ankidash/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const cardsHeader = "note_id,deck_name,anki_level,first_study_date,last_review_date,finnish,translation,fields\n"

func TestParseCards_Basic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	data := cardsHeader +
		`n1,Suomi::Ruoka,Mature,2024-01-01,2024-06-01,kala,fish,"{""tags"":""food""}"` + "\n" +
		"n2,Suomi,New,,,vene,boat,\n"

	records, stats, err := ParseCards(discardLogger(), []byte(data), now, time.UTC)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, stats.Produced)
	assert.Equal(t, 0, stats.Skipped)

	r1 := records[0]
	assert.Equal(t, "n1", r1.NoteID)
	assert.Equal(t, domain.LevelMature, r1.Level)
	assert.Equal(t, "Suomi::Ruoka", r1.GroupName)
	assert.Equal(t, []string{"Suomi", "Ruoka"}, r1.GroupPath)
	assert.Equal(t, "kala", r1.FrontText)
	assert.Equal(t, "fish", r1.BackText)
	assert.Equal(t, map[string]any{"tags": "food"}, r1.ExtraFields)
	require.NotNil(t, r1.DaysSinceFirstStudy)
	assert.Equal(t, 161, *r1.DaysSinceFirstStudy)
	require.NotNil(t, r1.DaysSinceLastReview)
	assert.Equal(t, 9, *r1.DaysSinceLastReview)

	r2 := records[1]
	assert.Equal(t, domain.LevelNew, r2.Level)
	assert.Nil(t, r2.FirstStudyDate)
	assert.Nil(t, r2.LastReviewDate)
	assert.Nil(t, r2.DaysSinceFirstStudy)
	assert.Nil(t, r2.DaysSinceLastReview)
	assert.Empty(t, r2.ExtraFields)
	assert.False(t, r2.IsOverdue)
}

func TestParseCards_FieldCountMismatchSkipsRow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	data := cardsHeader +
		"n1,Suomi,New,,,a,b,\n" +
		"n2,Suomi,New\n" + // short row
		"n3,Suomi,Young,2024-01-01,2024-06-01,c,d,\n"

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records, stats, err := ParseCards(log, []byte(data), now, time.UTC)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "n1", records[0].NoteID)
	assert.Equal(t, "n3", records[1].NoteID)
	assert.Equal(t, 3, stats.TotalRows)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, strings.Count(buf.String(), "field count mismatch"))
}

func TestParseCards_MalformedFieldsAreDefaulted(t *testing.T) {
	t.Parallel()

	data := cardsHeader +
		"n1,Suomi,Mature,not-a-date,also-bad,kala,fish,{broken json\n"

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records, _, err := ParseCards(discardLogger(), []byte(data), now, time.UTC)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Nil(t, r.FirstStudyDate)
	assert.Nil(t, r.LastReviewDate)
	assert.NotNil(t, r.ExtraFields)
	assert.Empty(t, r.ExtraFields)
	assert.False(t, r.IsOverdue)
}

func TestParseCards_LevelFallbackChain(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		row    string
		want   domain.CardLevel
	}{
		{
			name:   "anki_level primary",
			header: "note_id,anki_level,status\n",
			row:    "n1,Young,Suspended\n",
			want:   domain.LevelYoung,
		},
		{
			name:   "status fallback",
			header: "note_id,anki_level,status\n",
			row:    "n1,,Suspended\n",
			want:   domain.LevelSuspended,
		},
		{
			name:   "header casing ignored",
			header: "Note_ID,Anki_Level\n",
			row:    "n1,mature\n",
			want:   domain.LevelMature,
		},
		{
			name:   "unknown fallback",
			header: "note_id,anki_level\n",
			row:    "n1,\n",
			want:   domain.LevelUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, _, err := ParseCards(discardLogger(), []byte(tt.header+tt.row), now, time.UTC)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Level)
			assert.NotEmpty(t, records[0].Level.String())
		})
	}
}

func TestParseCards_OverduePolicy(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		level      string
		lastReview string
		want       bool
	}{
		{"new never overdue", "New", "2024-01-01", false},
		{"learning one day fresh", "Learning", "2024-06-09", false},
		{"learning two days stale", "Learning", "2024-06-08", true},
		{"relearning stale", "Relearning", "2024-06-01", true},
		{"young within week", "Young", "2024-06-04", false},
		{"young past week", "Young", "2024-06-02", true},
		{"mature within 21", "Mature", "2024-05-21", false},
		{"mature past 21", "Mature", "2024-05-19", true},
		{"suspended never", "Suspended", "2024-01-01", false},
		{"no review date never", "Mature", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "note_id,anki_level,last_review_date\n" +
				"n1," + tt.level + "," + tt.lastReview + "\n"
			records, _, err := ParseCards(discardLogger(), []byte(data), now, time.UTC)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].IsOverdue)
		})
	}
}

func TestParseCards_QuotedFields(t *testing.T) {
	t.Parallel()

	data := "note_id,deck_name,anki_level,finnish,translation,fields\n" +
		`n1,"Suomi::Lauseet",Young,"ei, kiitos","no, thanks","{""note"":""say \""thanks\""""}"` + "\n"

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	records, _, err := ParseCards(discardLogger(), []byte(data), now, time.UTC)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ei, kiitos", records[0].FrontText)
	assert.Equal(t, "no, thanks", records[0].BackText)
	assert.Equal(t, map[string]any{"note": `say "thanks"`}, records[0].ExtraFields)
}

func TestParseCards_MissingNoteIDColumnIsFatal(t *testing.T) {
	t.Parallel()

	data := "deck_name,anki_level\nSuomi,New\n"
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	_, _, err := ParseCards(discardLogger(), []byte(data), now, time.UTC)
	require.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestParseCards_EmptyInputIsFatal(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	_, _, err := ParseCards(discardLogger(), nil, now, time.UTC)
	require.ErrorIs(t, err, domain.ErrMissingInput)
}
