package llm

import (
	"encoding/json"

	"github.com/abhisek/curricula/internal/llmjson"
)

// finishContent turns model text into response content. Plain-text
// requests pass through untouched. Structured requests have their JSON
// recovered from any surrounding prose or fences, then schema-validated.
func finishContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(text), nil
	}

	payload, err := llmjson.Extract(text)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: json.RawMessage(text), Err: err}
	}
	if err := validateResponse(schema, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
