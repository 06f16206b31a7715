// Package lessonplan expands a syllabus into a per-lesson teaching plan.
package lessonplan

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/syllabus"
)

// Config holds lesson plan settings.
type Config struct {
	// Enrich asks the model for lesson content, one call per unit.
	Enrich      bool
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults: deterministic expansion only.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.5,
	}
}

// Expander turns syllabi into lesson plans.
type Expander struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewExpander creates an Expander. provider is only used when
// cfg.Enrich is set and may be nil otherwise.
func NewExpander(provider llm.Provider, cfg Config, log *logger.Logger) *Expander {
	return &Expander{provider: provider, cfg: cfg, log: logger.OrNop(log), now: time.Now}
}

// Expand builds the plan for s. Every unit gets an equal share of the
// course hours and every lesson an equal share of its unit. It never
// fails; a unit whose enrichment fails keeps its deterministic content.
//
// The plan is marked AI generated when the syllabus was, and, with
// enrichment on, every unit was enriched.
func (e *Expander) Expand(ctx context.Context, s *syllabus.Syllabus) *Plan {
	totalHours := courseHours(s)

	plan := &Plan{
		Course:                 s.Goal,
		GeneratedDate:          e.now().Format("2006-01-02 15:04:05"),
		TotalEstimatedDuration: formatHours(totalHours),
		TotalHours:             totalHours,
		TotalUnits:             len(s.Units),
		DurationConstraint:     s.DurationConstraint,
		Units:                  make(UnitPlans, 0, len(s.Units)),
	}

	var unitHours float64
	if len(s.Units) > 0 {
		unitHours = totalHours / float64(len(s.Units))
	}

	enrich := e.cfg.Enrich && e.provider != nil
	allEnriched := true
	for _, unit := range s.Units {
		up := expandUnit(unit, unitHours)
		if enrich && len(unit.Lessons) > 0 {
			lessonHours := up.Lessons[0].LessonHours
			extra, err := e.enrichUnit(ctx, s.Goal, unit, lessonHours)
			if err != nil {
				e.log.Warn("lesson enrichment failed, using templates", "unit", unit.Title, "error", err)
				allEnriched = false
			} else {
				for i := range up.Lessons {
					extra[i].apply(&up.Lessons[i])
				}
				up.Enriched = true
			}
		}
		plan.Units = append(plan.Units, up)
	}

	plan.AIGenerated = s.AIGenerated && (!e.cfg.Enrich || (enrich && allEnriched))
	return plan
}

// courseHours is the syllabus budget, or the goal's parsed budget when
// the syllabus carries none.
func courseHours(s *syllabus.Syllabus) float64 {
	if s.DurationConstraint.TotalHours > 0 {
		return s.DurationConstraint.TotalHours
	}
	return float64(duration.Parse(s.Goal).TotalHours)
}

// expandUnit is the deterministic expansion of one unit.
func expandUnit(unit syllabus.Unit, unitHours float64) UnitPlan {
	var lessonHours float64
	if len(unit.Lessons) > 0 {
		lessonHours = unitHours / float64(len(unit.Lessons))
	}

	up := UnitPlan{
		UnitTitle:     unit.Title,
		UnitObjective: unitObjective(unit.Title, unit.Outcomes),
		UnitOutcomes:  unit.Outcomes,
		UnitDuration:  fmt.Sprintf("%.1f hours", unitHours),
		UnitHours:     unitHours,
		TotalLessons:  len(unit.Lessons),
		Lessons:       make([]LessonDetail, 0, len(unit.Lessons)),
	}
	if up.UnitOutcomes == nil {
		up.UnitOutcomes = []string{}
	}

	for i, title := range unit.Lessons {
		number := i + 1
		concepts := keyConcepts(title, unit.Title)
		up.Lessons = append(up.Lessons, LessonDetail{
			LessonNumber:       number,
			LessonTitle:        title,
			LessonDuration:     fmt.Sprintf("%.1f hours", lessonHours),
			LessonHours:        lessonHours,
			KeyConcepts:        concepts,
			ImportantTopics:    importantTopics(title, unit.Title, concepts),
			TimeBreakdown:      timeBreakdown(lessonHours),
			LearningObjectives: learningObjectives(title, concepts),
			Prerequisites:      prerequisites(number, unit.Title),
			AssessmentMethods:  assessmentMethods(title),
		})
	}
	return up
}

// formatHours prints whole hours without a fraction.
func formatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%d hours", int(h))
	}
	return fmt.Sprintf("%.1f hours", h)
}
