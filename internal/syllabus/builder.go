// Package syllabus builds, fits and exports learning syllabi.
package syllabus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
)

var (
	// ErrNoUnits means the model returned a syllabus without units.
	ErrNoUnits = errors.New("syllabus has no units")

	// ErrEmptyUnit means a returned unit has no lessons.
	ErrEmptyUnit = errors.New("syllabus unit has no lessons")
)

// Builder produces a syllabus for a goal, asking the model first and
// falling back to a deterministic outline on any failure.
type Builder struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewBuilder creates a Builder. A nil provider always takes the fallback.
func NewBuilder(provider llm.Provider, cfg Config, log *logger.Logger) *Builder {
	return &Builder{provider: provider, cfg: cfg, log: logger.OrNop(log)}
}

// Build parses the goal's duration and builds a syllabus for it.
func (b *Builder) Build(ctx context.Context, goal string) *Syllabus {
	return b.BuildFor(ctx, goal, duration.Parse(goal))
}

// BuildFor builds a syllabus sized to an already parsed budget. It never
// fails: generation errors are logged and replaced by Fallback, with
// AIGenerated left false.
func (b *Builder) BuildFor(ctx context.Context, goal string, budget duration.Budget) *Syllabus {
	s, err := b.generate(ctx, goal, budget)
	if err != nil {
		if errors.Is(err, llm.ErrCredentialMissing) {
			b.log.Info("no LLM configured, using fallback syllabus", "goal", goal)
		} else {
			b.log.Warn("syllabus generation failed, using fallback", "goal", goal, "error", err)
		}
		return Fallback(goal, budget)
	}
	return s
}

type syllabusOutput struct {
	Goal  string       `json:"goal"`
	Units []unitOutput `json:"units"`
}

type unitOutput struct {
	Title    string   `json:"title"`
	Lessons  []string `json:"lessons"`
	Outcomes []string `json:"outcomes"`
}

func (b *Builder) generate(ctx context.Context, goal string, budget duration.Budget) (*Syllabus, error) {
	if b.provider == nil {
		return nil, llm.ErrCredentialMissing
	}

	ctx = llm.WithPurpose(ctx, "syllabus")

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildUserMessage(goal, budget)),
		Schema:      Schema,
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	}

	resp, err := b.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("syllabus generation: %w", err)
	}

	var out syllabusOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse syllabus response: %w", err)
	}

	units, err := toUnits(out.Units)
	if err != nil {
		return nil, err
	}

	return &Syllabus{
		Goal:               goal,
		Units:              units,
		DurationConstraint: constraintFor(budget),
		AIGenerated:        true,
	}, nil
}

// toUnits drops blank titles and checks every unit still has a lesson.
func toUnits(in []unitOutput) ([]Unit, error) {
	if len(in) == 0 {
		return nil, ErrNoUnits
	}

	units := make([]Unit, 0, len(in))
	for i, u := range in {
		lessons := nonBlank(u.Lessons)
		if len(lessons) == 0 {
			return nil, fmt.Errorf("unit %d %q: %w", i+1, u.Title, ErrEmptyUnit)
		}
		title := strings.TrimSpace(u.Title)
		if title == "" {
			title = fmt.Sprintf("Unit %d", i+1)
		}
		units = append(units, Unit{
			Title:    title,
			Lessons:  lessons,
			Outcomes: nonBlank(u.Outcomes),
		})
	}
	return units, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
