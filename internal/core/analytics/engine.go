package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/achievements"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const BestWeekWindowDays = 365

// Engine assembles per-focus statistics, global statistics and deep insights
// from a snapshot. It holds no state besides its calendar and never mutates
// its inputs.
type Engine struct {
	cal      Calendar
	insights *InsightEngine
}

func NewEngine(cal Calendar) *Engine {
	return &Engine{
		cal:      cal,
		insights: NewInsightEngine(),
	}
}

func (e *Engine) Calendar() Calendar {
	return e.cal
}

func (e *Engine) FocusStatistics(f *domain.Focus, now time.Time) domain.FocusStatistics {
	if f == nil {
		return domain.FocusStatistics{CompletionHistory: []time.Time{}, RecentTrend: domain.TrendStable}
	}

	dates := f.CompletionDates
	weekly := WeeklyCompletionRate(e.cal, dates, now)
	monthly := MonthlyCompletionRate(e.cal, dates, now)

	return domain.FocusStatistics{
		FocusID:               f.ID,
		Streak:                CurrentStreak(e.cal, dates, now),
		LongestStreak:         LongestStreak(e.cal, dates),
		TotalCompletions:      len(dates),
		WeeklyCompletionRate:  weekly,
		MonthlyCompletionRate: monthly,
		RecentTrend:           RecentTrend(weekly, monthly),
		CompletedToday:        CompletedOn(e.cal, f, e.cal.StartOfDay(now)),
		LastCompletion:        f.LastCompletion(),
		CompletionHistory:     append([]time.Time{}, dates...),
	}
}

func (e *Engine) GlobalStatistics(focuses []*domain.Focus, totalXP int, now time.Time) domain.GlobalStatistics {
	focuses = compact(focuses)
	all := AllCompletions(focuses)
	streak := CurrentStreak(e.cal, all, now)

	xpIntoLevel := 0
	if totalXP > 0 {
		xpIntoLevel = totalXP % domain.XPPerLevel
	}

	return domain.GlobalStatistics{
		TotalXP:             totalXP,
		CurrentLevel:        domain.LevelForXP(totalXP),
		XPIntoLevel:         xpIntoLevel,
		LevelProgress:       float64(xpIntoLevel) / float64(domain.XPPerLevel),
		FocusCompletionRate: e.completionRateToday(focuses, now),
		DailyAverage:        DailyAverage(e.cal, all, now),
		TotalCompletions:    len(all),
		Streak:              streak,
		LongestStreak:       LongestStreak(e.cal, all),
		Achievements:        achievements.BuildAchievements(totalXP, streak, len(all), len(focuses)),
	}
}

func (e *Engine) DeepInsights(focuses []*domain.Focus, now time.Time) domain.DeepInsights {
	focuses = compact(focuses)

	if len(focuses) == 0 {
		return emptyInsights(NoFocusInsight())
	}

	all := AllCompletions(focuses)
	if len(all) == 0 {
		return emptyInsights(NoCompletionsInsight(len(focuses)))
	}

	bestCount, bestStart := BestWeek(e.cal, all, now)
	favorite, favoriteCount := FavoriteFocus(focuses)
	weekdays := WeekdayPerformance(e.cal, all)
	trend := MonthlyTrend(e.cal, all, now)

	ctx := &InsightContext{
		GlobalStreak:       CurrentStreak(e.cal, all, now),
		WeekdayPerformance: weekdays,
		MonthlyTrend:       trend,
		FavoriteFocus:      favorite,
		FavoriteFocusCount: favoriteCount,
	}

	return domain.DeepInsights{
		BestWeekCompletions:   bestCount,
		BestWeekDate:          bestStart,
		FavoriteFocus:         favorite,
		FavoriteFocusCount:    favoriteCount,
		WeekdayPerformance:    weekdays,
		Insights:              e.insights.Generate(ctx),
		MonthlyTrend:          trend,
		AverageSessionsPerDay: DailyAverage(e.cal, all, now),
	}
}

// BestWeek finds the locale week with the most completions among those in
// the trailing 365 days. Weeks are visited oldest first and only a strictly
// higher count replaces the current best, so the earliest week wins ties.
func BestWeek(cal Calendar, instants []time.Time, now time.Time) (int, *time.Time) {
	weeks := make(map[DayKey]int)
	for _, t := range instants {
		if cal.IsWithinLastNDays(t, BestWeekWindowDays, now) {
			weeks[cal.StartOfWeek(cal.StartOfDay(t))]++
		}
	}
	if len(weeks) == 0 {
		return 0, nil
	}

	starts := make([]DayKey, 0, len(weeks))
	for k := range weeks {
		starts = append(starts, k)
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})

	best := starts[0]
	for _, k := range starts[1:] {
		if weeks[k] > weeks[best] {
			best = k
		}
	}

	start := best.In(cal.location())
	return weeks[best], &start
}

// FavoriteFocus returns the focus with the most completions. The first focus
// in slice order wins ties.
func FavoriteFocus(focuses []*domain.Focus) (string, int) {
	title := ""
	count := 0
	for _, f := range focuses {
		if f == nil {
			continue
		}
		if n := len(f.CompletionDates); n > count {
			title = f.Title
			count = n
		}
	}
	return title, count
}

func (e *Engine) completionRateToday(focuses []*domain.Focus, now time.Time) float64 {
	if len(focuses) == 0 {
		return 0
	}

	today := e.cal.StartOfDay(now)
	done := 0
	for _, f := range focuses {
		if CompletedOn(e.cal, f, today) {
			done++
		}
	}
	return float64(done) / float64(len(focuses))
}

func emptyInsights(insight domain.PersonalizedInsight) domain.DeepInsights {
	return domain.DeepInsights{
		WeekdayPerformance: []domain.WeekdayPerformance{},
		Insights:           []domain.PersonalizedInsight{insight},
		MonthlyTrend:       domain.TrendStable,
	}
}

func compact(focuses []*domain.Focus) []*domain.Focus {
	out := make([]*domain.Focus, 0, len(focuses))
	for _, f := range focuses {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}
