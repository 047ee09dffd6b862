package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ankidash/internal/domain"
)

func testIndex() domain.ActivityIndex {
	return domain.ActivityIndex{
		"2024-06-05": {
			Reviews:       []domain.ReviewEvent{{NoteID: "n1"}, {NoteID: "n2"}},
			NewStudies:    []domain.ReviewEvent{{NoteID: "n3"}},
			TotalActivity: 3,
		},
		"2024-06-01": {
			Reviews:       []domain.ReviewEvent{{NoteID: "n1"}},
			TotalActivity: 1,
		},
	}
}

func TestTimeSeries_Week(t *testing.T) {
	t.Parallel()

	buckets := TimeSeries(domain.WindowWeek, testIndex(), testNow, time.UTC, domain.LanguageEnglish)
	require.Len(t, buckets, 7)

	// Oldest bucket first: May 30 ... June 5.
	assert.Equal(t, "May 30", buckets[0].Label)
	assert.Equal(t, "Jun 5", buckets[6].Label)

	assert.Equal(t, 2, buckets[6].Reviews)
	assert.Equal(t, 1, buckets[6].NewStudies)
	assert.Equal(t, 1, buckets[2].Reviews) // June 1
	assert.Zero(t, buckets[0].Reviews)
}

func TestTimeSeries_MonthCoversCalendarMonth(t *testing.T) {
	t.Parallel()

	buckets := TimeSeries(domain.WindowMonth, testIndex(), testNow, time.UTC, domain.LanguageEnglish)

	// May 6 through June 5 inclusive = 31 daily buckets.
	require.Len(t, buckets, 31)
	assert.Equal(t, "May 6", buckets[0].Label)
	assert.Equal(t, "Jun 5", buckets[30].Label)
	assert.Equal(t, 2, buckets[30].Reviews)
}

func TestTimeSeries_YearUsesWeeklyBuckets(t *testing.T) {
	t.Parallel()

	buckets := TimeSeries(domain.WindowYear, testIndex(), testNow, time.UTC, domain.LanguageEnglish)
	require.NotEmpty(t, buckets)

	// A calendar year of weekly buckets.
	assert.GreaterOrEqual(t, len(buckets), 52)
	assert.LessOrEqual(t, len(buckets), 54)

	first := buckets[0]
	assert.Equal(t, time.Date(2023, 6, 6, 0, 0, 0, 0, time.UTC), first.Start)
	assert.Equal(t, "Jun 2023", first.Label)

	totalReviews := 0
	for _, b := range buckets {
		totalReviews += b.Reviews
	}
	assert.Equal(t, 3, totalReviews)
}

func TestTimeSeries_FinnishLabels(t *testing.T) {
	t.Parallel()

	week := TimeSeries(domain.WindowWeek, nil, testNow, time.UTC, domain.LanguageFinnish)
	assert.Equal(t, "5.6.", week[6].Label)

	year := TimeSeries(domain.WindowYear, nil, testNow, time.UTC, domain.LanguageFinnish)
	assert.Equal(t, "6/2023", year[0].Label)
}

func TestTimeSeries_EmptyIndex(t *testing.T) {
	t.Parallel()

	buckets := TimeSeries(domain.WindowWeek, domain.ActivityIndex{}, testNow, time.UTC, domain.LanguageEnglish)
	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.Zero(t, b.Reviews)
		assert.Zero(t, b.NewStudies)
	}
}
