// Package pipeline runs the goal → syllabus → lesson plan flow and keeps
// each session's output for download.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/lessonplan"
	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/store"
	"github.com/abhisek/curricula/internal/syllabus"
)

var (
	// ErrInvalidInput means the goal was empty or blank.
	ErrInvalidInput = errors.New("learning goal is required")

	// ErrNotFound means nothing was generated for the session yet.
	ErrNotFound = errors.New("no syllabus generated for this session")
)

// Config groups the stage settings.
type Config struct {
	Syllabus   syllabus.Config
	LessonPlan lessonplan.Config
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{
		Syllabus:   syllabus.DefaultConfig(),
		LessonPlan: lessonplan.DefaultConfig(),
	}
}

// Request is one plan generation.
type Request struct {
	Goal string
	// SessionID scopes saved artifacts. Empty means nothing is saved.
	SessionID string
	// StudyHours overrides the study share of the parsed budget when
	// positive, e.g. with a smart-duration estimate.
	StudyHours int
}

// Result is everything one run produced.
type Result struct {
	Budget    duration.Budget
	Syllabus  *syllabus.Syllabus
	Plan      *lessonplan.Plan
	SessionID string
}

// Pipeline wires the stages together.
type Pipeline struct {
	builder   *syllabus.Builder
	expander  *lessonplan.Expander
	artifacts store.ArtifactRepo
	log       *logger.Logger
}

// New creates a Pipeline. artifacts may be nil, in which case runs are
// not persisted and Latest always reports ErrNotFound.
func New(provider llm.Provider, cfg Config, artifacts store.ArtifactRepo, log *logger.Logger) *Pipeline {
	log = logger.OrNop(log)
	return &Pipeline{
		builder:   syllabus.NewBuilder(provider, cfg.Syllabus, log),
		expander:  lessonplan.NewExpander(provider, cfg.LessonPlan, log),
		artifacts: artifacts,
		log:       log,
	}
}

func cleanGoal(goal string) (string, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return "", ErrInvalidInput
	}
	return goal, nil
}

// Duration parses the goal's time budget.
func (p *Pipeline) Duration(goal string) (duration.Budget, error) {
	goal, err := cleanGoal(goal)
	if err != nil {
		return duration.Budget{}, err
	}
	return duration.Parse(goal), nil
}

// Syllabus builds an unfitted syllabus for goal.
func (p *Pipeline) Syllabus(ctx context.Context, goal string) (*syllabus.Syllabus, error) {
	goal, err := cleanGoal(goal)
	if err != nil {
		return nil, err
	}
	return p.builder.Build(ctx, goal), nil
}

// Expand turns a syllabus into a lesson plan.
func (p *Pipeline) Expand(ctx context.Context, s *syllabus.Syllabus) *lessonplan.Plan {
	return p.expander.Expand(ctx, s)
}

// Run executes the whole flow. The only error is ErrInvalidInput; model
// failures degrade to deterministic output and failed saves are logged.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	goal, err := cleanGoal(req.Goal)
	if err != nil {
		return nil, err
	}

	log := p.log.With("session", req.SessionID)

	budget := duration.Parse(goal)
	log.Debug("parsed duration", "goal", goal, "total_hours", budget.TotalHours, "explicit", budget.IsExplicitHourConstraint)

	built := p.builder.BuildFor(ctx, goal, budget)
	var fitted *syllabus.Syllabus
	if req.StudyHours > 0 {
		log.Debug("study hours overridden", "study_hours", req.StudyHours)
		fitted = syllabus.FitToStudyHours(built, req.StudyHours)
	} else {
		fitted = syllabus.FitToBudget(built, float64(budget.TotalHours))
	}
	log.Info("syllabus ready",
		"goal", goal, "units", len(fitted.Units), "lessons", fitted.TotalLessons(),
		"study_hours", fitted.DurationConstraint.StudyHours, "ai_generated", fitted.AIGenerated)

	plan := p.expander.Expand(ctx, fitted)

	if req.SessionID != "" {
		p.save(ctx, req.SessionID, goal, store.KindSyllabus, fitted)
		p.save(ctx, req.SessionID, goal, store.KindLessonPlan, plan)
	}

	return &Result{
		Budget:    budget,
		Syllabus:  fitted,
		Plan:      plan,
		SessionID: req.SessionID,
	}, nil
}

func (p *Pipeline) save(ctx context.Context, sessionID, goal, kind string, v any) {
	if p.artifacts == nil {
		return
	}
	body, err := json.Marshal(v)
	if err == nil {
		err = p.artifacts.Save(ctx, &store.Artifact{SessionID: sessionID, Kind: kind, Goal: goal, Body: body})
	}
	if err != nil {
		p.log.Warn("failed to save artifact", "session", sessionID, "kind", kind, "error", err)
	}
}

// Latest returns the last syllabus Run produced for sessionID.
func (p *Pipeline) Latest(ctx context.Context, sessionID string) (*syllabus.Syllabus, error) {
	if p.artifacts == nil || sessionID == "" {
		return nil, ErrNotFound
	}
	a, err := p.artifacts.Latest(ctx, sessionID, store.KindSyllabus)
	if err != nil {
		return nil, fmt.Errorf("load syllabus: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	var s syllabus.Syllabus
	if err := json.Unmarshal(a.Body, &s); err != nil {
		return nil, fmt.Errorf("decode syllabus: %w", err)
	}
	return &s, nil
}

// LatestPlan returns the last lesson plan Run produced for sessionID.
func (p *Pipeline) LatestPlan(ctx context.Context, sessionID string) (*lessonplan.Plan, error) {
	if p.artifacts == nil || sessionID == "" {
		return nil, ErrNotFound
	}
	a, err := p.artifacts.Latest(ctx, sessionID, store.KindLessonPlan)
	if err != nil {
		return nil, fmt.Errorf("load lesson plan: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	var plan lessonplan.Plan
	if err := json.Unmarshal(a.Body, &plan); err != nil {
		return nil, fmt.Errorf("decode lesson plan: %w", err)
	}
	return &plan, nil
}
