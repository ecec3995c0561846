package analytics

import (
	"fmt"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const (
	MaxInsights = 3

	hotStreakDays          = 7
	strongWeekdayThreshold = 3
	favoriteFocusThreshold = 2
)

// InsightContext holds the already computed values the insight rules read.
type InsightContext struct {
	GlobalStreak       int
	WeekdayPerformance []domain.WeekdayPerformance
	MonthlyTrend       domain.Trend
	FavoriteFocus      string
	FavoriteFocusCount int
}

// InsightRule inspects the context and emits at most one insight.
type InsightRule func(ctx *InsightContext) (domain.PersonalizedInsight, bool)

// InsightEngine evaluates its rules in priority order.
type InsightEngine struct {
	rules []InsightRule
}

func NewInsightEngine() *InsightEngine {
	return &InsightEngine{
		rules: []InsightRule{
			StreakInsight,
			StrongestWeekdayInsight,
			WeakestWeekdayInsight,
			TrendInsight,
			FavoriteFocusInsight,
		},
	}
}

// Generate runs every rule, falls back to a generic motivation when none
// fired, and keeps the first MaxInsights results.
func (e *InsightEngine) Generate(ctx *InsightContext) []domain.PersonalizedInsight {
	var insights []domain.PersonalizedInsight
	for _, rule := range e.rules {
		if insight, ok := rule(ctx); ok {
			insights = append(insights, insight)
		}
	}

	if len(insights) == 0 {
		insights = append(insights, FallbackInsight())
	}
	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

// StreakInsight celebrates a streak of a week or more and nudges a restart at
// zero. Streaks of 1 to 6 days stay silent.
func StreakInsight(ctx *InsightContext) (domain.PersonalizedInsight, bool) {
	switch {
	case ctx.GlobalStreak >= hotStreakDays:
		return domain.PersonalizedInsight{
			Emoji:   "🔥",
			Title:   "Streak on fire",
			Message: fmt.Sprintf("You have completed a focus %d days in a row. Keep the chain going!", ctx.GlobalStreak),
			Type:    domain.InsightAchievement,
		}, true
	case ctx.GlobalStreak == 0:
		return domain.PersonalizedInsight{
			Emoji:   "💪",
			Title:   "Time for a fresh start",
			Message: "Your streak has lapsed. Complete one focus today to start a new one.",
			Type:    domain.InsightMotivation,
		}, true
	}
	return domain.PersonalizedInsight{}, false
}

func StrongestWeekdayInsight(ctx *InsightContext) (domain.PersonalizedInsight, bool) {
	if len(ctx.WeekdayPerformance) == 0 {
		return domain.PersonalizedInsight{}, false
	}

	best := ctx.WeekdayPerformance[0]
	if best.TotalCompletions <= strongWeekdayThreshold {
		return domain.PersonalizedInsight{}, false
	}

	return domain.PersonalizedInsight{
		Emoji: "📅",
		Title: "Your strongest day",
		Message: fmt.Sprintf("%s is your most productive day with %.1f completions on average. Schedule demanding focuses there.",
			best.Weekday, best.AverageCompletions),
		Type: domain.InsightTip,
	}, true
}

func WeakestWeekdayInsight(ctx *InsightContext) (domain.PersonalizedInsight, bool) {
	if len(ctx.WeekdayPerformance) == 0 {
		return domain.PersonalizedInsight{}, false
	}

	worst := ctx.WeekdayPerformance[len(ctx.WeekdayPerformance)-1]
	if worst.TotalCompletions <= 0 {
		return domain.PersonalizedInsight{}, false
	}

	return domain.PersonalizedInsight{
		Emoji: "🎯",
		Title: "Room to grow",
		Message: fmt.Sprintf("%s is your quietest day with %.1f completions on average. Plan something small for it.",
			worst.Weekday, worst.AverageCompletions),
		Type: domain.InsightTip,
	}, true
}

func TrendInsight(ctx *InsightContext) (domain.PersonalizedInsight, bool) {
	switch ctx.MonthlyTrend {
	case domain.TrendUp:
		return domain.PersonalizedInsight{
			Emoji:   "📈",
			Title:   "On the rise",
			Message: "You completed more focuses this month than last month. Great momentum!",
			Type:    domain.InsightAchievement,
		}, true
	case domain.TrendDown:
		return domain.PersonalizedInsight{
			Emoji:   "📉",
			Title:   "Slight dip",
			Message: "This month is behind last month so far. One small completion today turns it around.",
			Type:    domain.InsightMotivation,
		}, true
	}
	return domain.PersonalizedInsight{}, false
}

func FavoriteFocusInsight(ctx *InsightContext) (domain.PersonalizedInsight, bool) {
	if ctx.FavoriteFocusCount <= favoriteFocusThreshold {
		return domain.PersonalizedInsight{}, false
	}

	return domain.PersonalizedInsight{
		Emoji:   "⭐",
		Title:   "Favorite focus",
		Message: fmt.Sprintf("%q is your favorite focus with %d completions.", ctx.FavoriteFocus, ctx.FavoriteFocusCount),
		Type:    domain.InsightAchievement,
	}, true
}

func FallbackInsight() domain.PersonalizedInsight {
	return domain.PersonalizedInsight{
		Emoji:   "✨",
		Title:   "Keep going",
		Message: "Every completion counts. Stay consistent and the patterns will show.",
		Type:    domain.InsightMotivation,
	}
}

func NoFocusInsight() domain.PersonalizedInsight {
	return domain.PersonalizedInsight{
		Emoji:   "🚀",
		Title:   "Start your first focus",
		Message: "Create your first focus to begin tracking your progress.",
		Type:    domain.InsightMotivation,
	}
}

func NoCompletionsInsight(focusCount int) domain.PersonalizedInsight {
	noun := "focuses"
	if focusCount == 1 {
		noun = "focus"
	}
	return domain.PersonalizedInsight{
		Emoji:   "🎯",
		Title:   "Time to complete your first one",
		Message: fmt.Sprintf("You have %d %s set up. Complete one today to get started.", focusCount, noun),
		Type:    domain.InsightMotivation,
	}
}
