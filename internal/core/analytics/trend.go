package analytics

import (
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

// MonthCounts returns completions in [start of this month, now] and in
// [start of previous month, start of this month). Month boundaries follow the
// calendar, not fixed 30-day windows.
func MonthCounts(cal Calendar, instants []time.Time, now time.Time) (current, previous int) {
	monthStart := cal.StartOfMonth(now)
	prevStart := cal.StartOfPreviousMonth(now)

	for _, t := range instants {
		switch {
		case !t.Before(monthStart) && !t.After(now):
			current++
		case !t.Before(prevStart) && t.Before(monthStart):
			previous++
		}
	}
	return current, previous
}

func MonthlyTrend(cal Calendar, instants []time.Time, now time.Time) domain.Trend {
	current, previous := MonthCounts(cal, instants, now)
	return classify(current, previous)
}

func classify[T int | float64](current, previous T) domain.Trend {
	switch {
	case current > previous:
		return domain.TrendUp
	case current < previous:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}
