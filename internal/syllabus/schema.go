package syllabus

import "github.com/abhisek/curricula/internal/llm"

// Schema is the structured output requested from the model. Non-empty
// lists are checked in Go after decoding; several providers reject
// minItems in strict mode.
var Schema = &llm.Schema{
	Name:        "syllabus",
	Description: "A learning syllabus of ordered units, each with lesson titles and outcomes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goal": map[string]any{
				"type":        "string",
				"description": "The learning goal, restated",
			},
			"units": map[string]any{
				"type":        "array",
				"description": "Units in teaching order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Unit title (3-8 words)",
						},
						"lessons": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Lesson titles in teaching order",
						},
						"outcomes": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-4 things the learner can do after the unit",
						},
					},
					"required":             []any{"title", "lessons", "outcomes"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"goal", "units"},
		"additionalProperties": false,
	},
}
