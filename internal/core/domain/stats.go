package domain

import "time"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type InsightType string

const (
	InsightMotivation  InsightType = "motivation"
	InsightWarning     InsightType = "warning"
	InsightTip         InsightType = "tip"
	InsightAchievement InsightType = "achievement"
)

type FocusStatistics struct {
	FocusID               string      `json:"focus_id"`
	Streak                int         `json:"streak"`
	LongestStreak         int         `json:"longest_streak"`
	TotalCompletions      int         `json:"total_completions"`
	WeeklyCompletionRate  float64     `json:"weekly_completion_rate"`
	MonthlyCompletionRate float64     `json:"monthly_completion_rate"`
	RecentTrend           Trend       `json:"recent_trend"`
	CompletedToday        bool        `json:"completed_today"`
	LastCompletion        *time.Time  `json:"last_completion,omitempty"`
	CompletionHistory     []time.Time `json:"completion_history"`
}

type GlobalStatistics struct {
	TotalXP             int                   `json:"total_xp"`
	CurrentLevel        int                   `json:"current_level"`
	XPIntoLevel         int                   `json:"xp_into_level"`
	LevelProgress       float64               `json:"level_progress"`
	FocusCompletionRate float64               `json:"focus_completion_rate"`
	DailyAverage        float64               `json:"daily_average"`
	TotalCompletions    int                   `json:"total_completions"`
	Streak              int                   `json:"streak"`
	LongestStreak       int                   `json:"longest_streak"`
	Achievements        []AchievementInstance `json:"achievements"`
}

type WeekdayPerformance struct {
	Weekday            string  `json:"weekday"`
	AverageCompletions float64 `json:"average_completions"`
	TotalCompletions   int     `json:"total_completions"`
	Rank               int     `json:"rank"`
}

type PersonalizedInsight struct {
	Emoji   string      `json:"emoji"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Type    InsightType `json:"type"`
}

type DeepInsights struct {
	BestWeekCompletions   int                   `json:"best_week_completions"`
	BestWeekDate          *time.Time            `json:"best_week_date,omitempty"`
	FavoriteFocus         string                `json:"favorite_focus"`
	FavoriteFocusCount    int                   `json:"favorite_focus_count"`
	WeekdayPerformance    []WeekdayPerformance  `json:"weekday_performance"`
	Insights              []PersonalizedInsight `json:"insights"`
	MonthlyTrend          Trend                 `json:"monthly_trend"`
	AverageSessionsPerDay float64               `json:"average_sessions_per_day"`
}
