package lessonplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/syllabus"
)

type enrichmentOutput struct {
	Lessons []lessonEnrichment `json:"lessons"`
}

type lessonEnrichment struct {
	LessonTitle        string   `json:"lesson_title"`
	KeyConcepts        []string `json:"key_concepts"`
	ImportantTopics    []string `json:"important_topics"`
	LearningObjectives []string `json:"learning_objectives"`
}

// enrichUnit asks the model for lesson content of one unit. The result
// holds exactly one entry per lesson.
func (e *Expander) enrichUnit(ctx context.Context, course string, unit syllabus.Unit, lessonHours float64) ([]lessonEnrichment, error) {
	ctx = llm.WithPurpose(ctx, "lesson-plan")

	req := llm.Request{
		System:      enrichSystemPrompt,
		Messages:    llm.UserPrompt(buildEnrichUserMessage(course, unit, lessonHours)),
		Schema:      EnrichmentSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson enrichment: %w", err)
	}

	var out enrichmentOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson enrichment: %w", err)
	}
	if len(out.Lessons) != len(unit.Lessons) {
		return nil, fmt.Errorf("lesson enrichment: got %d lessons, want %d", len(out.Lessons), len(unit.Lessons))
	}
	return out.Lessons, nil
}

// apply overlays model content on a deterministic lesson, keeping the
// concept and topic bounds.
func (le lessonEnrichment) apply(d *LessonDetail) {
	if concepts := trimmed(le.KeyConcepts); len(concepts) > 0 {
		d.KeyConcepts = clampConcepts(concepts)
	}
	if topics := trimmed(le.ImportantTopics); len(topics) > 0 {
		d.ImportantTopics = topics[:min(maxTopics, len(topics))]
	}
	if objectives := trimmed(le.LearningObjectives); len(objectives) > 0 {
		d.LearningObjectives = objectives
	}
}

func trimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
