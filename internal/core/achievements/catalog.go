// Package achievements evaluates the fixed achievement catalog against the
// four live metrics: XP, streak, completions and focus count.
package achievements

import "github.com/comitanigiacomo/fokus-engine/internal/core/domain"

// definitions is the complete catalog. Order is significant: evaluation
// output follows it exactly. Append new entries, never reorder.
var definitions = []domain.AchievementDefinition{
	// common
	{
		Title:       "First Step",
		Description: "Complete your first focus session.",
		Icon:        "checkmark.seal",
		Rarity:      domain.RarityCommon,
		Category:    "Completions",
		Requirement: "Complete 1 focus session.",
		Tip:         "Start with a small goal so you get moving right away.",
		Metric:      domain.MetricCompletions,
		GoalValue:   1,
	},
	{
		Title:       "Sticking With It",
		Description: "Reach 5 completions and get the ball rolling.",
		Icon:        "checkmark.circle",
		Rarity:      domain.RarityCommon,
		Category:    "Completions",
		Requirement: "Reach 5 completions.",
		Tip:         "Block fixed time slots in your day for your focuses.",
		Metric:      domain.MetricCompletions,
		GoalValue:   5,
	},
	{
		Title:       "On the Move",
		Description: "10 completions: your first routines are forming.",
		Icon:        "figure.walk",
		Rarity:      domain.RarityCommon,
		Category:    "Completions",
		Requirement: "Reach 10 completions.",
		Tip:         "Small daily steps beat big one-off actions.",
		Metric:      domain.MetricCompletions,
		GoalValue:   10,
	},
	{
		Title:       "Level Up",
		Description: "Reach 100 XP and raise your focus level.",
		Icon:        "star",
		Rarity:      domain.RarityCommon,
		Category:    "Experience",
		Requirement: "Collect 100 XP.",
		Tip:         "Every completion earns XP, so just stay consistent.",
		Metric:      domain.MetricXP,
		GoalValue:   100,
	},
	{
		Title:       "Mini Streak",
		Description: "Keep a 2-day streak.",
		Icon:        "flame",
		Rarity:      domain.RarityCommon,
		Category:    "Consistency",
		Requirement: "Keep a 2-day streak.",
		Tip:         "Decide in the evening what you will do the next day.",
		Metric:      domain.MetricStreak,
		GoalValue:   2,
	},
	{
		Title:       "In Stride",
		Description: "Keep a 3-day streak and find your rhythm.",
		Icon:        "flame.fill",
		Rarity:      domain.RarityCommon,
		Category:    "Consistency",
		Requirement: "Keep a 3-day streak.",
		Tip:         "Use reminders so you do not break your streak by accident.",
		Metric:      domain.MetricStreak,
		GoalValue:   3,
	},
	{
		Title:       "Clearly Focused",
		Description: "Manage at least 3 active focuses.",
		Icon:        "circle.grid.2x2",
		Rarity:      domain.RarityCommon,
		Category:    "Variety",
		Requirement: "Create at least 3 active focuses.",
		Tip:         "Pick focuses from different areas of life such as health, work and learning.",
		Metric:      domain.MetricFocusCount,
		GoalValue:   3,
	},
	{
		Title:       "Structure Built",
		Description: "Manage 5 active focuses with clearly structured goals.",
		Icon:        "square.grid.2x2",
		Rarity:      domain.RarityCommon,
		Category:    "Variety",
		Requirement: "Create at least 5 active focuses.",
		Tip:         "Make sure every focus is phrased clearly and concretely.",
		Metric:      domain.MetricFocusCount,
		GoalValue:   5,
	},

	// rare
	{
		Title:       "Routine Builder",
		Description: "30 completions: your habits are getting stable.",
		Icon:        "checkmark.circle.fill",
		Rarity:      domain.RarityRare,
		Category:    "Completions",
		Requirement: "Reach 30 completions.",
		Tip:         "Celebrate milestones to keep your motivation high.",
		Metric:      domain.MetricCompletions,
		GoalValue:   30,
	},
	{
		Title:       "Habit Pro",
		Description: "75 completions: focus is a fixed part of your day.",
		Icon:        "medal.fill",
		Rarity:      domain.RarityRare,
		Category:    "Completions",
		Requirement: "Reach 75 completions.",
		Tip:         "Use your strongest weekdays to finish several focuses.",
		Metric:      domain.MetricCompletions,
		GoalValue:   75,
	},
	{
		Title:       "In Rhythm",
		Description: "Keep a 7-day streak: a full week of focus.",
		Icon:        "flame.circle.fill",
		Rarity:      domain.RarityRare,
		Category:    "Consistency",
		Requirement: "Keep a 7-day streak.",
		Tip:         "On hard days plan smaller focuses you can finish quickly.",
		Metric:      domain.MetricStreak,
		GoalValue:   7,
	},
	{
		Title:       "Seasoned",
		Description: "750 XP: you keep showing up for your goals.",
		Icon:        "star.circle.fill",
		Rarity:      domain.RarityRare,
		Category:    "Experience",
		Requirement: "Collect 750 XP.",
		Tip:         "Distraction-free focus time raises your XP faster.",
		Metric:      domain.MetricXP,
		GoalValue:   750,
	},
	{
		Title:       "Multitasker",
		Description: "Manage 7 active focuses in parallel.",
		Icon:        "rectangle.3.group",
		Rarity:      domain.RarityRare,
		Category:    "Variety",
		Requirement: "Create at least 7 active focuses.",
		Tip:         "Check regularly whether every focus is still relevant to you.",
		Metric:      domain.MetricFocusCount,
		GoalValue:   7,
	},

	// legendary
	{
		Title:       "Long-Distance Runner",
		Description: "150 completions: you are playing the long game.",
		Icon:        "crown.fill",
		Rarity:      domain.RarityLegendary,
		Category:    "Completions",
		Requirement: "Reach 150 completions.",
		Tip:         "Your structure works. Stick with it.",
		Metric:      domain.MetricCompletions,
		GoalValue:   150,
	},
	{
		Title:       "Unstoppable",
		Description: "30 days in a row: a legendary streak.",
		Icon:        "bolt.fill",
		Rarity:      domain.RarityLegendary,
		Category:    "Consistency",
		Requirement: "Keep a 30-day streak.",
		Tip:         "Keep tiny but doable focuses ready for difficult days.",
		Metric:      domain.MetricStreak,
		GoalValue:   30,
	},
	{
		Title:       "Focus Master",
		Description: "1500 XP: you are among the top users.",
		Icon:        "rosette",
		Rarity:      domain.RarityLegendary,
		Category:    "Experience",
		Requirement: "Collect 1500 XP.",
		Tip:         "Use your experience to set ambitious but realistic goals.",
		Metric:      domain.MetricXP,
		GoalValue:   1500,
	},
}

// Catalog returns a copy of every achievement definition in catalog order.
func Catalog() []domain.AchievementDefinition {
	return append([]domain.AchievementDefinition(nil), definitions...)
}
