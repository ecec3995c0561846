package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

// CurrentStreak counts consecutive completion days ending today, or ending
// yesterday when today has no completion yet. Any older gap resets it to 0.
func CurrentStreak(cal Calendar, instants []time.Time, now time.Time) int {
	days := cal.DistinctDays(instants)
	if len(days) == 0 {
		return 0
	}

	anchor := cal.StartOfDay(now)
	if _, ok := days[anchor]; !ok {
		anchor = anchor.AddDays(-1)
		if _, ok := days[anchor]; !ok {
			return 0
		}
	}

	streak := 0
	for day := anchor; ; day = day.AddDays(-1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive completion days anywhere in
// the history.
func LongestStreak(cal Calendar, instants []time.Time) int {
	days := cal.DistinctDays(instants)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]DayKey, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if DaysBetweenKeys(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// GlobalStreak applies CurrentStreak to the union of all focus histories.
func GlobalStreak(cal Calendar, focuses []*domain.Focus, now time.Time) int {
	return CurrentStreak(cal, AllCompletions(focuses), now)
}

// AllCompletions concatenates histories in focus order, then completion order.
func AllCompletions(focuses []*domain.Focus) []time.Time {
	n := 0
	for _, f := range focuses {
		if f != nil {
			n += len(f.CompletionDates)
		}
	}

	all := make([]time.Time, 0, n)
	for _, f := range focuses {
		if f == nil {
			continue
		}
		all = append(all, f.CompletionDates...)
	}
	return all
}
