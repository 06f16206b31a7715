package lessonplan

import "github.com/abhisek/curricula/internal/llm"

// EnrichmentSchema is the per-unit structured output for lesson detail.
var EnrichmentSchema = &llm.Schema{
	Name:        "lesson-enrichment",
	Description: "Key concepts, topics and objectives for each lesson of one unit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessons": map[string]any{
				"type":        "array",
				"description": "One entry per lesson, in the order given",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"lesson_title": map[string]any{
							"type":        "string",
							"description": "The lesson title exactly as given",
						},
						"key_concepts": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "3-5 key concepts (2-5 words each)",
						},
						"important_topics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Up to 6 topics to cover",
						},
						"learning_objectives": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "3-4 measurable objectives",
						},
					},
					"required":             []any{"lesson_title", "key_concepts", "important_topics", "learning_objectives"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"lessons"},
		"additionalProperties": false,
	},
}
