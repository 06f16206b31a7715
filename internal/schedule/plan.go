package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/curricula/internal/llm"
)

// ErrNoDays means the model returned a plan without any days.
var ErrNoDays = errors.New("study plan has no days")

// Day is one day of a StudyPlan.
type Day struct {
	Day                  int      `json:"day"`
	FocusArea            string   `json:"focus_area"`
	LearningObjectives   []string `json:"learning_objectives"`
	KeyTopics            []string `json:"key_topics"`
	PracticeActivities   []string `json:"practice_activities"`
	BreakRecommendations string   `json:"break_recommendations"`
	EstimatedHours       float64  `json:"estimated_hours"`
}

// StudyPlan is a day-by-day schedule for an Estimate.
type StudyPlan struct {
	Goal             string   `json:"goal"`
	Days             []Day    `json:"study_plan"`
	LearningStrategy string   `json:"learning_strategy"`
	SuccessTips      []string `json:"success_tips"`
	AIGenerated      bool     `json:"ai_generated"`
}

// Plan lays est out day by day. A zero est is replaced by the fallback
// estimate for goal. Model failures produce FallbackPlan.
func (s *Service) Plan(ctx context.Context, goal string, est Estimate) (*StudyPlan, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}
	if est.TotalDays < 1 {
		fallback, err := s.Estimate(ctx, goal)
		if err != nil {
			return nil, err
		}
		est = fallback
	}

	plan, err := s.plan(ctx, goal, est)
	if err != nil {
		if errors.Is(err, llm.ErrCredentialMissing) {
			s.log.Info("no LLM configured, using fallback study plan", "goal", goal)
		} else {
			s.log.Warn("study plan generation failed, using fallback", "goal", goal, "days", est.TotalDays, "error", err)
		}
		return FallbackPlan(goal, est), nil
	}
	return plan, nil
}

type planOutput struct {
	StudyPlan        []Day    `json:"study_plan"`
	LearningStrategy string   `json:"learning_strategy"`
	SuccessTips      []string `json:"success_tips"`
}

func (s *Service) plan(ctx context.Context, goal string, est Estimate) (*StudyPlan, error) {
	if s.provider == nil {
		return nil, llm.ErrCredentialMissing
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "study-plan"), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildPlanMessage(goal, est)),
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("study plan: %w", err)
	}

	var out planOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse study plan: %w", err)
	}
	if len(out.StudyPlan) == 0 {
		return nil, ErrNoDays
	}

	days := make([]Day, len(out.StudyPlan))
	for i, d := range out.StudyPlan {
		d.Day = i + 1
		d.FocusArea = cleanScheduleText(d.FocusArea)
		for j, o := range d.LearningObjectives {
			d.LearningObjectives[j] = cleanScheduleText(o)
		}
		if d.EstimatedHours <= 0 {
			d.EstimatedHours = est.DailyStudyHours
		}
		days[i] = d
	}

	return &StudyPlan{
		Goal:             goal,
		Days:             days,
		LearningStrategy: strings.TrimSpace(out.LearningStrategy),
		SuccessTips:      out.SuccessTips,
		AIGenerated:      true,
	}, nil
}

// FallbackPlan builds a schedule that moves from setup through core and
// advanced topics to practice, ending with a review day.
func FallbackPlan(goal string, est Estimate) *StudyPlan {
	total := max(1, est.TotalDays)
	daily := est.DailyStudyHours
	if daily <= 0 {
		daily = 3
	}

	days := make([]Day, 0, total)
	for day := 1; day <= total; day++ {
		focus, objectives := phase(day, total)
		days = append(days, Day{
			Day:                  day,
			FocusArea:            focus,
			LearningObjectives:   objectives,
			KeyTopics:            []string{fmt.Sprintf("Key topic %d.1", day), fmt.Sprintf("Key topic %d.2", day)},
			PracticeActivities:   []string{fmt.Sprintf("Practice exercise %d.1", day), fmt.Sprintf("Hands-on activity %d.2", day)},
			BreakRecommendations: "25 minutes study, 5 minutes break",
			EstimatedHours:       daily,
		})
	}

	return &StudyPlan{
		Goal:             goal,
		Days:             days,
		LearningStrategy: "Progressive learning from fundamentals to advanced topics",
		SuccessTips: []string{
			"Take regular breaks to maintain focus",
			"Practice consistently to reinforce learning",
			"Review previous lessons before starting new ones",
		},
	}
}

// phase picks the focus of day out of total. The first and last days are
// fixed; the rest split at 30% and 70% of the schedule.
func phase(day, total int) (string, []string) {
	switch {
	case day == 1:
		return "Fundamentals & Setup", []string{"Understand basic concepts", "Set up learning environment"}
	case day == total:
		return "Review & Projects", []string{"Review all concepts", "Complete practical project"}
	case day*10 <= total*3:
		return "Core Concepts", []string{"Master essential topics", "Build foundational knowledge"}
	case day*10 <= total*7:
		return "Advanced Topics", []string{"Learn advanced techniques", "Solve complex problems"}
	default:
		return "Practice & Implementation", []string{"Apply knowledge practically", "Build real projects"}
	}
}

// Models like to decorate days with the daily load ("Day 13h",
// "3 Day Study Period"); schedule text carries content only.
var scheduleNoise = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)Day\s*(\d+)\s*\d*h\b`), "Day $1"},
	{regexp.MustCompile(`(?i)\d+\s*Day\s*Study\s*Period\s*`), ""},
	{regexp.MustCompile(`(?i)Study\s*Period\s*`), ""},
	{regexp.MustCompile(`(?i)\d+h/Day\s*Daily\s*Commitment\s*`), ""},
	{regexp.MustCompile(`(?i)Daily\s*Commitment\s*`), ""},
	{regexp.MustCompile(`\s+`), " "},
}

func cleanScheduleText(s string) string {
	for _, n := range scheduleNoise {
		s = n.re.ReplaceAllString(s, n.repl)
	}
	return strings.TrimSpace(s)
}
