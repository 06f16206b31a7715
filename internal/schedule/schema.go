package schedule

import "github.com/abhisek/curricula/internal/llm"

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// EstimateSchema is the structured output of a duration estimate.
var EstimateSchema = &llm.Schema{
	Name:        "duration_estimate",
	Description: "A realistic study timeline for a learning goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total_days":               map[string]any{"type": "number"},
			"daily_study_hours":        map[string]any{"type": "number"},
			"total_study_hours":        map[string]any{"type": "number"},
			"difficulty_level":         map[string]any{"type": "string"},
			"rationale":                map[string]any{"type": "string"},
			"recommended_pace":         map[string]any{"type": "string"},
			"is_realistic":             map[string]any{"type": "boolean"},
			"respects_time_constraint": map[string]any{"type": "boolean"},
		},
		"required": []any{
			"total_days", "daily_study_hours", "total_study_hours", "difficulty_level",
			"rationale", "recommended_pace", "is_realistic", "respects_time_constraint",
		},
		"additionalProperties": false,
	},
}

// PlanSchema is the structured output of a day-by-day study plan.
var PlanSchema = &llm.Schema{
	Name:        "study_plan",
	Description: "A day-by-day study schedule",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"study_plan": map[string]any{
				"type":        "array",
				"description": "Days in order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":                   map[string]any{"type": "integer"},
						"focus_area":            map[string]any{"type": "string"},
						"learning_objectives":   stringList("What the learner can do after the day"),
						"key_topics":            stringList("Topics, most important first"),
						"practice_activities":   stringList("Hands-on exercises"),
						"break_recommendations": map[string]any{"type": "string"},
						"estimated_hours":       map[string]any{"type": "number"},
					},
					"required": []any{
						"day", "focus_area", "learning_objectives", "key_topics",
						"practice_activities", "break_recommendations", "estimated_hours",
					},
					"additionalProperties": false,
				},
			},
			"learning_strategy": map[string]any{"type": "string"},
			"success_tips":      stringList("Practical tips"),
		},
		"required":             []any{"study_plan", "learning_strategy", "success_tips"},
		"additionalProperties": false,
	},
}
