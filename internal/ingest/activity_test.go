package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ankidash/internal/domain"
)

func TestParseActivity_BareDateMap(t *testing.T) {
	t.Parallel()

	data := `{
		"2024-06-01": {
			"reviews": [{"note_id": "n1", "deck_name": "Suomi"}],
			"new_studies": [{"note_id": "n2"}]
		},
		"2024-06-02": {
			"reviews": []
		}
	}`

	idx, err := ParseActivity(discardLogger(), []byte(data))
	require.NoError(t, err)
	require.Len(t, idx, 2)

	day := idx.Day("2024-06-01")
	require.Len(t, day.Reviews, 1)
	assert.Equal(t, "n1", day.Reviews[0].NoteID)
	assert.Equal(t, "Suomi", day.Reviews[0].GroupName)
	require.Len(t, day.NewStudies, 1)
	assert.Equal(t, 2, day.TotalActivity)

	// Missing new_studies defaults to empty.
	assert.Empty(t, idx.Day("2024-06-02").NewStudies)
	assert.Zero(t, idx.Day("2024-06-02").TotalActivity)
}

func TestParseActivity_NestedShapeWithMetadata(t *testing.T) {
	t.Parallel()

	data := `{
		"metadata": {"version": "1.0", "total_days_tracked": 1},
		"last_updated": "2024-06-01T10:00:00",
		"daily_activity": {
			"2024-06-01": {
				"reviews": [{"noteId": "n1"}],
				"new_studies": [{"noteId": "n1"}]
			}
		}
	}`

	idx, err := ParseActivity(discardLogger(), []byte(data))
	require.NoError(t, err)
	require.Len(t, idx, 1)

	day := idx.Day("2024-06-01")
	assert.Equal(t, "n1", day.Reviews[0].NoteID)
	assert.Equal(t, "n1", day.NewStudies[0].NoteID)
	assert.Equal(t, 2, day.TotalActivity)
}

func TestParseActivity_LevelChanges(t *testing.T) {
	t.Parallel()

	data := `{
		"2024-06-01": {
			"reviews": [{"note_id": "n1"}],
			"level_changes": [
				{"note_id": "n1", "previous_level": "Young", "new_level": "Mature"}
			]
		}
	}`

	idx, err := ParseActivity(discardLogger(), []byte(data))
	require.NoError(t, err)

	day := idx.Day("2024-06-01")
	require.Len(t, day.LevelChanges, 1)
	assert.Equal(t, domain.LevelYoung, day.LevelChanges[0].PreviousLevel)
	assert.Equal(t, domain.LevelMature, day.LevelChanges[0].NewLevel)

	// Level changes do not count as activity volume.
	assert.Equal(t, 1, day.TotalActivity)
}

func TestParseActivity_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte(""), []byte("  \n"), []byte("{}")} {
		idx, err := ParseActivity(discardLogger(), data)
		require.NoError(t, err)
		assert.Empty(t, idx)
	}
}

func TestParseActivity_MalformedDaySkipped(t *testing.T) {
	t.Parallel()

	data := `{
		"2024-06-01": "not an object",
		"2024-06-02": {"reviews": [{"note_id": "n1"}]}
	}`

	idx, err := ParseActivity(discardLogger(), []byte(data))
	require.NoError(t, err)
	require.Len(t, idx, 1)
	assert.Equal(t, 1, idx.Day("2024-06-02").TotalActivity)
}

func TestParseActivity_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseActivity(discardLogger(), []byte("{nope"))
	require.Error(t, err)
}
