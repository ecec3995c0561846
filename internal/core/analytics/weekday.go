package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

type weekdayBucket struct {
	weekday time.Weekday
	total   int
	days    map[DayKey]struct{}
}

// WeekdayPerformance groups completions by weekday and ranks the weekdays by
// average completions per active day. Buckets appear in first-seen order
// before a stable sort, so equal averages keep that order. Weekdays without
// completions are omitted.
func WeekdayPerformance(cal Calendar, instants []time.Time) []domain.WeekdayPerformance {
	index := make(map[time.Weekday]int, 7)
	var buckets []*weekdayBucket

	for _, t := range instants {
		day := cal.StartOfDay(t)
		wd := day.Weekday()

		i, ok := index[wd]
		if !ok {
			i = len(buckets)
			index[wd] = i
			buckets = append(buckets, &weekdayBucket{weekday: wd, days: make(map[DayKey]struct{})})
		}

		b := buckets[i]
		b.total++
		b.days[day] = struct{}{}
	}

	perf := make([]domain.WeekdayPerformance, 0, len(buckets))
	for _, b := range buckets {
		perf = append(perf, domain.WeekdayPerformance{
			Weekday:            b.weekday.String(),
			AverageCompletions: float64(b.total) / float64(max(len(b.days), 1)),
			TotalCompletions:   b.total,
		})
	}

	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].AverageCompletions > perf[j].AverageCompletions
	})

	for i := range perf {
		perf[i].Rank = i + 1
	}
	return perf
}
