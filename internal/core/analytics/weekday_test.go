package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
)

func TestWeekdayPerformance(t *testing.T) {
	cal := utcCalendar()

	// 2024-03-04 is a Monday.
	monday := func(week, hour int) time.Time { return time.Date(2024, 3, 4+7*week, hour, 0, 0, 0, time.UTC) }
	tuesday := func(week, hour int) time.Time { return time.Date(2024, 3, 5+7*week, hour, 0, 0, 0, time.UTC) }
	friday := func(week, hour int) time.Time { return time.Date(2024, 3, 8+7*week, hour, 0, 0, 0, time.UTC) }

	t.Run("Empty history has no buckets", func(t *testing.T) {
		perf := analytics.WeekdayPerformance(cal, nil)
		assert.NotNil(t, perf)
		assert.Empty(t, perf)
	})

	t.Run("Averages per distinct day and ranks descending", func(t *testing.T) {
		instants := []time.Time{
			monday(0, 8),
			tuesday(0, 8), tuesday(0, 12), tuesday(0, 20),
			monday(1, 8),
			friday(0, 8), friday(0, 9),
		}

		perf := analytics.WeekdayPerformance(cal, instants)
		require.Len(t, perf, 3)

		assert.Equal(t, "Tuesday", perf[0].Weekday)
		assert.InDelta(t, 3.0, perf[0].AverageCompletions, 1e-9)
		assert.Equal(t, 3, perf[0].TotalCompletions)

		assert.Equal(t, "Friday", perf[1].Weekday)
		assert.InDelta(t, 2.0, perf[1].AverageCompletions, 1e-9)

		assert.Equal(t, "Monday", perf[2].Weekday)
		assert.InDelta(t, 1.0, perf[2].AverageCompletions, 1e-9)
		assert.Equal(t, 2, perf[2].TotalCompletions)

		for i, p := range perf {
			assert.Equal(t, i+1, p.Rank)
		}
	})

	t.Run("Ties keep first seen order", func(t *testing.T) {
		instants := []time.Time{friday(0, 8), monday(1, 8), tuesday(0, 8)}

		perf := analytics.WeekdayPerformance(cal, instants)
		require.Len(t, perf, 3)

		assert.Equal(t, "Friday", perf[0].Weekday)
		assert.Equal(t, "Monday", perf[1].Weekday)
		assert.Equal(t, "Tuesday", perf[2].Weekday)
	})

	t.Run("Totals add up to all completions", func(t *testing.T) {
		instants := []time.Time{monday(0, 1), monday(0, 2), monday(2, 3), friday(1, 4)}

		total := 0
		for _, p := range analytics.WeekdayPerformance(cal, instants) {
			total += p.TotalCompletions
		}
		assert.Equal(t, len(instants), total)
	})
}
