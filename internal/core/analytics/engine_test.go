package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

func newEngine() *analytics.Engine {
	return analytics.NewEngine(utcCalendar())
}

func TestEngine_FocusStatistics(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("Active focus", func(t *testing.T) {
		f := &domain.Focus{
			ID:    "f1",
			Title: "Read",
			CompletionDates: []time.Time{
				daysAgo(now, 2, 8), daysAgo(now, 1, 8), daysAgo(now, 0, 8),
				daysAgo(now, 20, 8),
			},
		}

		stats := newEngine().FocusStatistics(f, now)

		assert.Equal(t, "f1", stats.FocusID)
		assert.Equal(t, 3, stats.Streak)
		assert.Equal(t, 3, stats.LongestStreak)
		assert.Equal(t, 4, stats.TotalCompletions)
		assert.InDelta(t, 3.0/7.0, stats.WeeklyCompletionRate, 1e-9)
		assert.InDelta(t, 4.0/30.0, stats.MonthlyCompletionRate, 1e-9)
		assert.Equal(t, domain.TrendUp, stats.RecentTrend)
		assert.True(t, stats.CompletedToday)
		require.NotNil(t, stats.LastCompletion)
		assert.Equal(t, daysAgo(now, 0, 8), *stats.LastCompletion)
		assert.Len(t, stats.CompletionHistory, 4)
	})

	t.Run("Never completed", func(t *testing.T) {
		f := &domain.Focus{ID: "f2", Title: "Run"}

		stats := newEngine().FocusStatistics(f, now)

		assert.Zero(t, stats.Streak)
		assert.Zero(t, stats.TotalCompletions)
		assert.Equal(t, domain.TrendStable, stats.RecentTrend)
		assert.False(t, stats.CompletedToday)
		assert.Nil(t, stats.LastCompletion)
		assert.NotNil(t, stats.CompletionHistory)
	})

	t.Run("History is a copy", func(t *testing.T) {
		f := &domain.Focus{ID: "f3", CompletionDates: []time.Time{daysAgo(now, 0, 8)}}

		stats := newEngine().FocusStatistics(f, now)
		stats.CompletionHistory[0] = time.Time{}

		assert.Equal(t, daysAgo(now, 0, 8), f.CompletionDates[0])
	})
}

func TestEngine_GlobalStatistics(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("Levels from XP", func(t *testing.T) {
		stats := newEngine().GlobalStatistics(nil, 250, now)
		assert.Equal(t, 3, stats.CurrentLevel)
		assert.Equal(t, 50, stats.XPIntoLevel)
		assert.InDelta(t, 0.5, stats.LevelProgress, 1e-9)

		stats = newEngine().GlobalStatistics(nil, 0, now)
		assert.Equal(t, 1, stats.CurrentLevel)
		assert.Zero(t, stats.LevelProgress)
	})

	t.Run("Zero focuses never divides by zero", func(t *testing.T) {
		stats := newEngine().GlobalStatistics([]*domain.Focus{}, 0, now)

		assert.Zero(t, stats.FocusCompletionRate)
		assert.Zero(t, stats.DailyAverage)
		assert.Zero(t, stats.Streak)
		assert.Len(t, stats.Achievements, 16)
	})

	t.Run("Completion rate counts focuses done today", func(t *testing.T) {
		focuses := []*domain.Focus{
			{ID: "f1", CompletionDates: []time.Time{daysAgo(now, 0, 7), daysAgo(now, 0, 9)}},
			{ID: "f2", CompletionDates: []time.Time{daysAgo(now, 1, 7)}},
			{ID: "f3"},
			{ID: "f4", CompletionDates: []time.Time{daysAgo(now, 0, 22)}},
		}

		stats := newEngine().GlobalStatistics(focuses, 100, now)

		assert.InDelta(t, 0.5, stats.FocusCompletionRate, 1e-9)
		assert.Equal(t, 4, stats.TotalCompletions)
		assert.Equal(t, 2, stats.Streak)
		assert.InDelta(t, 2.0, stats.DailyAverage, 1e-9)
	})

	t.Run("Achievements use the global metrics", func(t *testing.T) {
		focuses := []*domain.Focus{
			{ID: "f1", CompletionDates: []time.Time{daysAgo(now, 0, 7)}},
		}

		stats := newEngine().GlobalStatistics(focuses, 25, now)

		require.NotEmpty(t, stats.Achievements)
		first := stats.Achievements[0]
		assert.Equal(t, "First Step", first.Title)
		assert.True(t, first.IsUnlocked)
		assert.Equal(t, 1, first.CurrentValue)
	})
}

func TestEngine_DeepInsights(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("No focuses returns the start insight", func(t *testing.T) {
		insights := newEngine().DeepInsights(nil, now)

		require.Len(t, insights.Insights, 1)
		assert.Equal(t, "Start your first focus", insights.Insights[0].Title)
		assert.Zero(t, insights.BestWeekCompletions)
		assert.Nil(t, insights.BestWeekDate)
		assert.Empty(t, insights.FavoriteFocus)
		assert.Zero(t, insights.FavoriteFocusCount)
		assert.Empty(t, insights.WeekdayPerformance)
		assert.Equal(t, domain.TrendStable, insights.MonthlyTrend)
		assert.Zero(t, insights.AverageSessionsPerDay)
	})

	t.Run("Focuses without completions", func(t *testing.T) {
		focuses := []*domain.Focus{{ID: "f1", Title: "Read"}, {ID: "f2", Title: "Run"}}

		insights := newEngine().DeepInsights(focuses, now)

		require.Len(t, insights.Insights, 1)
		assert.Equal(t, "Time to complete your first one", insights.Insights[0].Title)
		assert.Contains(t, insights.Insights[0].Message, "2 focuses")
		assert.Nil(t, insights.BestWeekDate)
		assert.Zero(t, insights.AverageSessionsPerDay)
	})

	t.Run("Full report", func(t *testing.T) {
		// 2024-05-15 is a Wednesday; its Monday-first week starts 2024-05-13.
		focuses := []*domain.Focus{
			{ID: "f1", Title: "Read", CompletionDates: []time.Time{
				daysAgo(now, 0, 8), daysAgo(now, 1, 8), daysAgo(now, 2, 8), daysAgo(now, 2, 20),
			}},
			{ID: "f2", Title: "Run", CompletionDates: []time.Time{daysAgo(now, 9, 8)}},
		}

		insights := newEngine().DeepInsights(focuses, now)

		assert.Equal(t, 4, insights.BestWeekCompletions)
		require.NotNil(t, insights.BestWeekDate)
		assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), *insights.BestWeekDate)
		assert.Equal(t, "Read", insights.FavoriteFocus)
		assert.Equal(t, 4, insights.FavoriteFocusCount)
		assert.Equal(t, domain.TrendUp, insights.MonthlyTrend)
		assert.NotEmpty(t, insights.WeekdayPerformance)
		assert.Equal(t, "Monday", insights.WeekdayPerformance[0].Weekday)
		assert.LessOrEqual(t, len(insights.Insights), analytics.MaxInsights)
		assert.NotEmpty(t, insights.Insights)
		assert.InDelta(t, 5.0/10.0, insights.AverageSessionsPerDay, 1e-9)
	})
}

func TestBestWeek(t *testing.T) {
	cal := utcCalendar()
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

	t.Run("Earliest week wins ties", func(t *testing.T) {
		instants := []time.Time{
			time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC),
		}

		count, start := analytics.BestWeek(cal, instants, now)
		assert.Equal(t, 1, count)
		require.NotNil(t, start)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *start)
	})

	t.Run("Completions older than a year are ignored", func(t *testing.T) {
		instants := []time.Time{
			time.Date(2023, 1, 2, 8, 0, 0, 0, time.UTC),
			time.Date(2023, 1, 3, 8, 0, 0, 0, time.UTC),
		}

		count, start := analytics.BestWeek(cal, instants, now)
		assert.Zero(t, count)
		assert.Nil(t, start)
	})
}

func TestFavoriteFocus_FirstWinsTies(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	focuses := []*domain.Focus{
		{Title: "Walk", CompletionDates: []time.Time{day}},
		{Title: "Read", CompletionDates: []time.Time{day, day}},
		{Title: "Run", CompletionDates: []time.Time{day, day}},
	}

	title, count := analytics.FavoriteFocus(focuses)
	assert.Equal(t, "Read", title)
	assert.Equal(t, 2, count)
}
