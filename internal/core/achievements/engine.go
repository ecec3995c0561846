package achievements

import "github.com/comitanigiacomo/fokus-engine/internal/core/domain"

// Metrics are the live values achievements are measured against.
type Metrics struct {
	TotalXP          int
	Streak           int
	TotalCompletions int
	FocusCount       int
}

func (m Metrics) valueOf(metric domain.AchievementMetric) int {
	switch metric {
	case domain.MetricXP:
		return m.TotalXP
	case domain.MetricStreak:
		return m.Streak
	case domain.MetricCompletions:
		return m.TotalCompletions
	case domain.MetricFocusCount:
		return m.FocusCount
	default:
		return 0
	}
}

// BuildAchievements evaluates the built-in catalog.
func BuildAchievements(totalXP, streak, totalCompletions, focusCount int) []domain.AchievementInstance {
	return Evaluate(definitions, Metrics{
		TotalXP:          totalXP,
		Streak:           streak,
		TotalCompletions: totalCompletions,
		FocusCount:       focusCount,
	})
}

// Evaluate produces one instance per definition, in definition order.
func Evaluate(defs []domain.AchievementDefinition, m Metrics) []domain.AchievementInstance {
	out := make([]domain.AchievementInstance, 0, len(defs))
	for _, def := range defs {
		current := m.valueOf(def.Metric)
		out = append(out, domain.AchievementInstance{
			AchievementDefinition: def,
			Progress:              progress(current, def.GoalValue),
			IsUnlocked:            current >= def.GoalValue,
			CurrentValue:          current,
		})
	}
	return out
}

func progress(current, goal int) float64 {
	if goal <= 0 {
		if current >= goal {
			return 1
		}
		return 0
	}
	return min(max(float64(current)/float64(goal), 0), 1)
}

func FilterByRarity(list []domain.AchievementInstance, rarity domain.Rarity) []domain.AchievementInstance {
	out := make([]domain.AchievementInstance, 0, len(list))
	for _, a := range list {
		if a.Rarity == rarity {
			out = append(out, a)
		}
	}
	return out
}

func Summarize(list []domain.AchievementInstance) domain.AchievementSummary {
	summary := domain.AchievementSummary{
		Total: len(list),
		ByRarity: map[domain.Rarity]int{
			domain.RarityCommon:    0,
			domain.RarityRare:      0,
			domain.RarityLegendary: 0,
		},
	}
	for _, a := range list {
		if a.IsUnlocked {
			summary.Unlocked++
			summary.ByRarity[a.Rarity]++
		}
	}
	return summary
}
