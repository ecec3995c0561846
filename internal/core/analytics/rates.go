package analytics

import (
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const (
	WeeklyWindowDays  = 7
	MonthlyWindowDays = 30
)

// CompletionsWithin counts raw instants (duplicates included) inside the
// trailing window of n days ending today.
func CompletionsWithin(cal Calendar, instants []time.Time, n int, now time.Time) int {
	count := 0
	for _, t := range instants {
		if cal.IsWithinLastNDays(t, n, now) {
			count++
		}
	}
	return count
}

// WeeklyCompletionRate is completion density over the last 7 days. It is not
// capped at 1: several completions on one day all count.
func WeeklyCompletionRate(cal Calendar, instants []time.Time, now time.Time) float64 {
	return float64(CompletionsWithin(cal, instants, WeeklyWindowDays, now)) / float64(WeeklyWindowDays)
}

func MonthlyCompletionRate(cal Calendar, instants []time.Time, now time.Time) float64 {
	return float64(CompletionsWithin(cal, instants, MonthlyWindowDays, now)) / float64(MonthlyWindowDays)
}

// RecentTrend compares the weekly against the monthly rate of one focus.
func RecentTrend(weeklyRate, monthlyRate float64) domain.Trend {
	return classify(weeklyRate, monthlyRate)
}

// CompletedOn reports whether the focus has at least one completion on day.
func CompletedOn(cal Calendar, f *domain.Focus, day DayKey) bool {
	for _, t := range f.CompletionDates {
		if cal.StartOfDay(t) == day {
			return true
		}
	}
	return false
}

// DailyAverage divides total completions by the number of days since the
// earliest one, both ends inclusive. No completions yields 0.
func DailyAverage(cal Calendar, instants []time.Time, now time.Time) float64 {
	if len(instants) == 0 {
		return 0
	}

	earliest := instants[0]
	for _, t := range instants[1:] {
		if t.Before(earliest) {
			earliest = t
		}
	}

	days := max(cal.DaysBetween(earliest, now)+1, 1)
	return float64(len(instants)) / float64(days)
}
