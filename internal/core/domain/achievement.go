package domain

import "errors"

var ErrInvalidRarity = errors.New("invalid rarity (must be common, rare or legendary)")

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

func ParseRarity(s string) (Rarity, error) {
	switch r := Rarity(s); r {
	case RarityCommon, RarityRare, RarityLegendary:
		return r, nil
	default:
		return "", ErrInvalidRarity
	}
}

// AchievementMetric selects which live value an achievement is measured against.
type AchievementMetric string

const (
	MetricXP          AchievementMetric = "xp"
	MetricStreak      AchievementMetric = "streak"
	MetricCompletions AchievementMetric = "completions"
	MetricFocusCount  AchievementMetric = "focusCount"
)

type AchievementDefinition struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Rarity      Rarity            `json:"rarity"`
	Category    string            `json:"category"`
	Requirement string            `json:"requirement"`
	Tip         string            `json:"tip"`
	Metric      AchievementMetric `json:"metric"`
	GoalValue   int               `json:"goal_value"`
}

type AchievementInstance struct {
	AchievementDefinition
	Progress     float64 `json:"progress"`
	IsUnlocked   bool    `json:"is_unlocked"`
	CurrentValue int     `json:"current_value"`
}

type AchievementSummary struct {
	Unlocked int            `json:"unlocked"`
	Total    int            `json:"total"`
	ByRarity map[Rarity]int `json:"unlocked_by_rarity"`
}

// AchievementReport is the achievements endpoint payload: the (optionally
// rarity filtered) list plus a summary over the full catalog.
type AchievementReport struct {
	Achievements []AchievementInstance `json:"achievements"`
	Summary      AchievementSummary    `json:"summary"`
}
