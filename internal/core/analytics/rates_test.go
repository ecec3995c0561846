package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

func TestCompletionRates(t *testing.T) {
	cal := utcCalendar()
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("One completion per day for a week is a rate of 1", func(t *testing.T) {
		var instants []time.Time
		for i := 0; i < 7; i++ {
			instants = append(instants, daysAgo(now, i, 9))
		}

		assert.InDelta(t, 1.0, analytics.WeeklyCompletionRate(cal, instants, now), 1e-9)
		assert.InDelta(t, 7.0/30.0, analytics.MonthlyCompletionRate(cal, instants, now), 1e-9)
	})

	t.Run("Same day duplicates push the rate above 1", func(t *testing.T) {
		var instants []time.Time
		for i := 0; i < 7; i++ {
			instants = append(instants, daysAgo(now, i, 9))
		}
		instants = append(instants, daysAgo(now, 0, 21))

		assert.InDelta(t, 8.0/7.0, analytics.WeeklyCompletionRate(cal, instants, now), 1e-9)
	})

	t.Run("Windows exclude older and future instants", func(t *testing.T) {
		instants := []time.Time{
			daysAgo(now, 7, 9),
			daysAgo(now, 29, 9),
			daysAgo(now, 30, 9),
			daysAgo(now, -1, 9),
		}

		assert.Equal(t, 0, analytics.CompletionsWithin(cal, instants, analytics.WeeklyWindowDays, now))
		assert.Equal(t, 2, analytics.CompletionsWithin(cal, instants, analytics.MonthlyWindowDays, now))
	})

	t.Run("Empty history", func(t *testing.T) {
		assert.Zero(t, analytics.WeeklyCompletionRate(cal, nil, now))
		assert.Zero(t, analytics.MonthlyCompletionRate(cal, nil, now))
	})
}

func TestRecentTrend(t *testing.T) {
	assert.Equal(t, domain.TrendUp, analytics.RecentTrend(0.5, 0.2))
	assert.Equal(t, domain.TrendDown, analytics.RecentTrend(0.1, 0.2))
	assert.Equal(t, domain.TrendStable, analytics.RecentTrend(0.2, 0.2))
}

func TestCompletedOn(t *testing.T) {
	cal := utcCalendar()
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	f := &domain.Focus{ID: "f1", CompletionDates: []time.Time{daysAgo(now, 1, 23)}}

	assert.True(t, analytics.CompletedOn(cal, f, cal.StartOfDay(daysAgo(now, 1, 0))))
	assert.False(t, analytics.CompletedOn(cal, f, cal.StartOfDay(now)))
}

func TestDailyAverage(t *testing.T) {
	cal := utcCalendar()
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("No completions is zero", func(t *testing.T) {
		assert.Zero(t, analytics.DailyAverage(cal, nil, now))
	})

	t.Run("All completions today divide by one day", func(t *testing.T) {
		instants := []time.Time{daysAgo(now, 0, 8), daysAgo(now, 0, 9)}
		assert.InDelta(t, 2.0, analytics.DailyAverage(cal, instants, now), 1e-9)
	})

	t.Run("Span is inclusive of both ends", func(t *testing.T) {
		instants := []time.Time{daysAgo(now, 0, 8), daysAgo(now, 9, 8), daysAgo(now, 4, 8)}
		assert.InDelta(t, 0.3, analytics.DailyAverage(cal, instants, now), 1e-9)
	})

	t.Run("Future earliest instant never divides by zero", func(t *testing.T) {
		instants := []time.Time{daysAgo(now, -3, 8)}
		assert.InDelta(t, 1.0, analytics.DailyAverage(cal, instants, now), 1e-9)
	})
}
