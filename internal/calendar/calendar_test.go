package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRejectsNonCanonicalDays(t *testing.T) {
	t.Parallel()

	_, err := Parse("2024-05-01")
	require.NoError(t, err)

	for _, day := range []string{"2024-5-01", "2024-05-1", "01-05-2024", "2024-02-30", "", "2024-05-01T00:00:00Z"} {
		require.Falsef(t, Valid(day), "expected %q to be rejected", day)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("far-east", 14*3600)
	require.Equal(t, Format(time.Now().In(loc)), Today(loc))
	require.True(t, Valid(Today(nil)))
}

func TestWindowSpansMonthBoundaries(t *testing.T) {
	t.Parallel()

	days, err := Window("2024-03-01", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"}, days)

	days, err = Window("2024-03-01", DefaultRadius)
	require.NoError(t, err)
	require.Len(t, days, 2*DefaultRadius+1)
	require.Equal(t, "2024-03-01", days[DefaultRadius])
}

func TestDaysCompareLexically(t *testing.T) {
	t.Parallel()

	earlier, err := AddDays("2024-12-31", -1)
	require.NoError(t, err)
	later, err := AddDays("2024-12-31", 1)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", later)
	require.Less(t, earlier, "2024-12-31")
	require.Less(t, "2024-12-31", later)
}

func TestStripKeepsWindowAwayFromEdges(t *testing.T) {
	t.Parallel()

	strip, err := NewStrip("2024-06-15", DefaultRadius)
	require.NoError(t, err)
	require.Equal(t, DefaultRadius, strip.Index())

	before := strip.Days
	require.NoError(t, strip.Select("2024-06-20"))
	require.Equal(t, before, strip.Days)
	require.Equal(t, "2024-06-20", strip.Days[strip.Index()])
}

func TestStripRecentersNearEdges(t *testing.T) {
	t.Parallel()

	strip, err := NewStrip("2024-06-15", DefaultRadius)
	require.NoError(t, err)

	// second slot of the strip
	require.NoError(t, strip.Select(strip.Days[1]))
	require.Len(t, strip.Days, 2*RecenterRadius+1)
	require.Equal(t, RecenterRadius, strip.Index())

	require.NoError(t, strip.Select("2030-01-01"))
	require.Equal(t, RecenterRadius, strip.Index())
	require.Equal(t, "2030-01-01", strip.Selected)

	require.Error(t, strip.Select("2030-1-01"))
}

func TestHuman(t *testing.T) {
	t.Parallel()

	require.Equal(t, "01 June 2024", Human("2024-06-01"))
	require.Equal(t, "soon", Human("soon"))
}
