// Package schedule estimates a realistic study timeline for a goal and lays
// it out day by day.
package schedule

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

// ErrEmptyGoal is returned for a blank goal.
var ErrEmptyGoal = errors.New("learning goal is required")

// Constraint types reported on an Estimate.
const (
	ConstraintHours      = "hours"
	ConstraintCalculated = "calculated"
)

// Estimate is a study timeline for a goal. Field names follow the
// duration_constraint object web clients send back to generate-plan.
type Estimate struct {
	TotalDays              int     `json:"totalDays"`
	TotalHours             int     `json:"totalHours"`
	DurationText           string  `json:"durationText"`
	DailyStudyHours        float64 `json:"dailyStudyHours"`
	StudyHours             int     `json:"studyHours"`
	PracticeHours          int     `json:"practiceHours"`
	DifficultyLevel        string  `json:"difficultyLevel"`
	Rationale              string  `json:"rationale"`
	RecommendedPace        string  `json:"recommendedPace"`
	IsRealistic            bool    `json:"isRealistic"`
	RespectsTimeConstraint bool    `json:"respectsTimeConstraint"`
	ConstraintType         string  `json:"constraintType"`
	AIGenerated            bool    `json:"ai_generated"`
}

// Config holds model settings for the schedule calls.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.4}
}

// Service produces estimates and day-by-day plans.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewService creates a Service. A nil provider always takes the fallbacks.
func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, log: logger.OrNop(log)}
}

// Estimate asks the model how long goal realistically takes. A goal that
// names its hours keeps them: the model only contributes difficulty, pace
// and rationale, and the timeline is pinned to one intensive day. Model
// failures produce FallbackEstimate.
func (s *Service) Estimate(ctx context.Context, goal string) (Estimate, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Estimate{}, ErrEmptyGoal
	}

	budget := duration.Parse(goal)
	est, err := s.estimate(ctx, goal, budget)
	if err != nil {
		if errors.Is(err, llm.ErrCredentialMissing) {
			s.log.Info("no LLM configured, using fallback estimate", "goal", goal)
		} else {
			s.log.Warn("duration estimate failed, using fallback", "goal", goal, "error", err)
		}
		return FallbackEstimate(budget), nil
	}
	return est, nil
}

type estimateOutput struct {
	TotalDays              float64 `json:"total_days"`
	DailyStudyHours        float64 `json:"daily_study_hours"`
	TotalStudyHours        float64 `json:"total_study_hours"`
	DifficultyLevel        string  `json:"difficulty_level"`
	Rationale              string  `json:"rationale"`
	RecommendedPace        string  `json:"recommended_pace"`
	IsRealistic            bool    `json:"is_realistic"`
	RespectsTimeConstraint bool    `json:"respects_time_constraint"`
}

func (s *Service) estimate(ctx context.Context, goal string, budget duration.Budget) (Estimate, error) {
	if s.provider == nil {
		return Estimate{}, llm.ErrCredentialMissing
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "smart-duration"), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildEstimateMessage(goal, budget)),
		Schema:      EstimateSchema,
		MaxTokens:   1024,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("duration estimate: %w", err)
	}

	var out estimateOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Estimate{}, fmt.Errorf("parse duration estimate: %w", err)
	}

	if budget.IsExplicitHourConstraint {
		est := hourBound(budget)
		est.DifficultyLevel = orDefault(out.DifficultyLevel, est.DifficultyLevel)
		est.Rationale = orDefault(out.Rationale, est.Rationale)
		est.RecommendedPace = orDefault(out.RecommendedPace, est.RecommendedPace)
		est.IsRealistic = out.IsRealistic
		est.AIGenerated = true
		return est, nil
	}

	days, daily, total := int(out.TotalDays), out.DailyStudyHours, int(out.TotalStudyHours)
	if days < 1 || daily <= 0 || total < 1 {
		return Estimate{}, fmt.Errorf("duration estimate out of range: %d days, %g h/day, %d h", days, daily, total)
	}
	est := newEstimate(days, daily, total, practiceHours(total, 0.2))
	est.DifficultyLevel = orDefault(out.DifficultyLevel, "intermediate")
	est.Rationale = strings.TrimSpace(out.Rationale)
	est.RecommendedPace = orDefault(out.RecommendedPace, "moderate")
	est.IsRealistic = out.IsRealistic
	est.RespectsTimeConstraint = out.RespectsTimeConstraint
	est.ConstraintType = ConstraintCalculated
	est.AIGenerated = true
	return est, nil
}

// FallbackEstimate derives an estimate from the budget alone. Explicit
// hours become one intensive day; anything else is spread over three-hour
// days at two to four hours a day.
func FallbackEstimate(b duration.Budget) Estimate {
	if b.IsExplicitHourConstraint {
		return hourBound(b)
	}

	hours := max(1, b.TotalHours)
	days := max(1, hours/3)
	daily := min(4, max(2, hours/days))
	est := newEstimate(days, float64(daily), hours, practiceHours(hours, 0.3))
	est.DifficultyLevel = "intermediate"
	est.Rationale = fmt.Sprintf("Standard duration calculation: %s", b.Label)
	est.RecommendedPace = "moderate"
	est.IsRealistic = true
	est.RespectsTimeConstraint = true
	est.ConstraintType = ConstraintCalculated
	return est
}

func hourBound(b duration.Budget) Estimate {
	hours := max(1, b.TotalHours)
	est := newEstimate(1, float64(hours), hours, practiceHours(hours, 0.2))
	est.DifficultyLevel = "intensive"
	est.Rationale = fmt.Sprintf("Intensive %d-hour learning session", hours)
	est.RecommendedPace = "intensive"
	est.IsRealistic = true
	est.RespectsTimeConstraint = true
	est.ConstraintType = ConstraintHours
	return est
}

func newEstimate(days int, daily float64, hours, practice int) Estimate {
	return Estimate{
		TotalDays:       days,
		TotalHours:      hours,
		DurationText:    fmt.Sprintf("%d hours", hours),
		DailyStudyHours: daily,
		StudyHours:      hours,
		PracticeHours:   practice,
	}
}

func practiceHours(hours int, share float64) int {
	return max(1, int(float64(hours)*share))
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
