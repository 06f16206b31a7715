package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/llm"
)

func TestFallbackEstimate(t *testing.T) {
	tests := []struct {
		goal string
		want Estimate
	}{
		{
			goal: "Learn React in 5 hours",
			want: Estimate{
				TotalDays: 1, TotalHours: 5, DurationText: "5 hours", DailyStudyHours: 5,
				StudyHours: 5, PracticeHours: 1, DifficultyLevel: "intensive",
				Rationale: "Intensive 5-hour learning session", RecommendedPace: "intensive",
				IsRealistic: true, RespectsTimeConstraint: true, ConstraintType: ConstraintHours,
			},
		},
		{
			goal: "Learn Go in 2 weeks",
			want: Estimate{
				TotalDays: 112, TotalHours: 336, DurationText: "336 hours", DailyStudyHours: 3,
				StudyHours: 336, PracticeHours: 100, DifficultyLevel: "intermediate",
				Rationale: "Standard duration calculation: 2 weeks", RecommendedPace: "moderate",
				IsRealistic: true, RespectsTimeConstraint: true, ConstraintType: ConstraintCalculated,
			},
		},
		{
			goal: "Basic lab safety",
			want: Estimate{
				TotalDays: 2, TotalHours: 8, DurationText: "8 hours", DailyStudyHours: 4,
				StudyHours: 8, PracticeHours: 2, DifficultyLevel: "intermediate",
				Rationale: "Standard duration calculation: 8 hours", RecommendedPace: "moderate",
				IsRealistic: true, RespectsTimeConstraint: true, ConstraintType: ConstraintCalculated,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackEstimate(duration.Parse(tt.goal)))
		})
	}
}

func TestFallbackEstimate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := duration.Budget{
			TotalHours:               rapid.IntRange(1, 5000).Draw(t, "hours"),
			Label:                    "x",
			IsExplicitHourConstraint: rapid.Bool().Draw(t, "explicit"),
		}
		est := FallbackEstimate(b)

		if est.StudyHours != b.TotalHours || est.TotalHours != b.TotalHours {
			t.Fatalf("hours changed: %+v from %d", est, b.TotalHours)
		}
		if est.TotalDays < 1 || est.PracticeHours < 1 {
			t.Fatalf("empty timeline: %+v", est)
		}
		if b.IsExplicitHourConstraint && (est.TotalDays != 1 || est.ConstraintType != ConstraintHours) {
			t.Fatalf("explicit hours must stay one day: %+v", est)
		}
		if !b.IsExplicitHourConstraint && (est.DailyStudyHours < 2 || est.DailyStudyHours > 4) {
			t.Fatalf("daily hours out of range: %g", est.DailyStudyHours)
		}
	})
}

func TestEstimate_HourConstraintPinned(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`{
		"total_days": 3, "daily_study_hours": 2, "total_study_hours": 6,
		"difficulty_level": "advanced", "rationale": "Tight but doable",
		"recommended_pace": "brisk", "is_realistic": false, "respects_time_constraint": false
	}`))
	svc := NewService(mock, DefaultConfig(), nil)

	est, err := svc.Estimate(t.Context(), "Learn React in 5 hours")
	require.NoError(t, err)

	assert.True(t, est.AIGenerated)
	assert.Equal(t, 1, est.TotalDays)
	assert.Equal(t, 5, est.StudyHours)
	assert.Equal(t, 5.0, est.DailyStudyHours)
	assert.True(t, est.RespectsTimeConstraint)
	assert.Equal(t, ConstraintHours, est.ConstraintType)
	assert.Equal(t, "advanced", est.DifficultyLevel)
	assert.Equal(t, "Tight but doable", est.Rationale)
	assert.Equal(t, "brisk", est.RecommendedPace)
	assert.False(t, est.IsRealistic)

	require.Len(t, mock.Calls, 1)
	assert.Same(t, EstimateSchema, mock.Calls[0].Schema)
}

func TestEstimate_ModelTimeline(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("```json\n" + `{
		"total_days": 10, "daily_study_hours": 2.5, "total_study_hours": 25,
		"difficulty_level": "", "rationale": "Two weeks of evenings",
		"recommended_pace": "gentle", "is_realistic": true, "respects_time_constraint": true
	}` + "\n```"))
	svc := NewService(mock, DefaultConfig(), nil)

	est, err := svc.Estimate(t.Context(), "Learn Go in 2 weeks")
	require.NoError(t, err)

	assert.True(t, est.AIGenerated)
	assert.Equal(t, 10, est.TotalDays)
	assert.Equal(t, 2.5, est.DailyStudyHours)
	assert.Equal(t, 25, est.StudyHours)
	assert.Equal(t, "25 hours", est.DurationText)
	assert.Equal(t, 5, est.PracticeHours)
	assert.Equal(t, "intermediate", est.DifficultyLevel)
	assert.Equal(t, ConstraintCalculated, est.ConstraintType)
}

func TestEstimate_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
	}{
		{"no provider", nil},
		{"unconfigured", llm.Unconfigured(nil)},
		{"upstream failure", llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})},
		{"prose reply", llm.NewMockProvider(llm.MockText("About two weeks should do."))},
		{"zero days", llm.NewMockProvider(llm.MockText(`{
			"total_days": 0, "daily_study_hours": 2, "total_study_hours": 10,
			"difficulty_level": "easy", "rationale": "", "recommended_pace": "gentle",
			"is_realistic": true, "respects_time_constraint": true
		}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewService(tt.provider, DefaultConfig(), nil).Estimate(t.Context(), "Learn Python")
			require.NoError(t, err)
			assert.Equal(t, FallbackEstimate(duration.Parse("Learn Python")), est)
			assert.False(t, est.AIGenerated)
		})
	}
}

func TestEstimate_BlankGoal(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, DefaultConfig(), nil).Estimate(t.Context(), "  ")
	assert.ErrorIs(t, err, ErrEmptyGoal)
	_, err = NewService(mock, DefaultConfig(), nil).Plan(t.Context(), "", Estimate{TotalDays: 2})
	assert.ErrorIs(t, err, ErrEmptyGoal)
	assert.Zero(t, mock.CallCount())
}

func focusAreas(p *StudyPlan) []string {
	out := make([]string, len(p.Days))
	for i, d := range p.Days {
		out[i] = d.FocusArea
	}
	return out
}

func TestFallbackPlan(t *testing.T) {
	p := FallbackPlan("Learn Go", Estimate{TotalDays: 10, DailyStudyHours: 2})

	assert.Equal(t, []string{
		"Fundamentals & Setup",
		"Core Concepts", "Core Concepts",
		"Advanced Topics", "Advanced Topics", "Advanced Topics", "Advanced Topics",
		"Practice & Implementation", "Practice & Implementation",
		"Review & Projects",
	}, focusAreas(p))
	assert.False(t, p.AIGenerated)
	assert.Len(t, p.SuccessTips, 3)

	d := p.Days[3]
	assert.Equal(t, 4, d.Day)
	assert.Equal(t, []string{"Key topic 4.1", "Key topic 4.2"}, d.KeyTopics)
	assert.Equal(t, 2.0, d.EstimatedHours)

	assert.Equal(t, []string{"Fundamentals & Setup"}, focusAreas(FallbackPlan("x", Estimate{TotalDays: 1})))
	assert.Equal(t, []string{"Fundamentals & Setup", "Review & Projects"}, focusAreas(FallbackPlan("x", Estimate{TotalDays: 2})))
	assert.Equal(t, 3.0, FallbackPlan("x", Estimate{TotalDays: 1}).Days[0].EstimatedHours)
}

func TestPlan_Model(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`{
		"study_plan": [
			{"day": 5, "focus_area": "Day 13h: Basics", "learning_objectives": ["3 Day Study Period Learn loops"],
			 "key_topics": ["Types"], "practice_activities": ["FizzBuzz"],
			 "break_recommendations": "50/10", "estimated_hours": 0},
			{"day": 6, "focus_area": "Concurrency", "learning_objectives": ["2h/Day Daily Commitment Use channels"],
			 "key_topics": ["Goroutines"], "practice_activities": ["Pipeline"],
			 "break_recommendations": "50/10", "estimated_hours": 1.5}
		],
		"learning_strategy": " Build then practice ",
		"success_tips": ["Code daily"]
	}`))
	svc := NewService(mock, DefaultConfig(), nil)

	p, err := svc.Plan(t.Context(), "Learn Go", Estimate{TotalDays: 2, DailyStudyHours: 3, StudyHours: 6})
	require.NoError(t, err)

	assert.True(t, p.AIGenerated)
	require.Len(t, p.Days, 2)
	assert.Equal(t, 1, p.Days[0].Day)
	assert.Equal(t, 2, p.Days[1].Day)
	assert.Equal(t, "Day 13: Basics", p.Days[0].FocusArea)
	assert.Equal(t, []string{"Learn loops"}, p.Days[0].LearningObjectives)
	assert.Equal(t, []string{"Use channels"}, p.Days[1].LearningObjectives)
	assert.Equal(t, 3.0, p.Days[0].EstimatedHours)
	assert.Equal(t, 1.5, p.Days[1].EstimatedHours)
	assert.Equal(t, "Build then practice", p.LearningStrategy)

	require.Len(t, mock.Calls, 1)
	assert.Same(t, PlanSchema, mock.Calls[0].Schema)
}

func TestPlan_Fallbacks(t *testing.T) {
	est := Estimate{TotalDays: 3, DailyStudyHours: 2}
	tests := []struct {
		name     string
		provider llm.Provider
	}{
		{"no provider", nil},
		{"upstream failure", llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})},
		{"no days", llm.NewMockProvider(llm.MockText(`{"study_plan": [], "learning_strategy": "", "success_tips": []}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewService(tt.provider, DefaultConfig(), nil).Plan(t.Context(), "Learn Go", est)
			require.NoError(t, err)
			assert.Equal(t, FallbackPlan("Learn Go", est), p)
		})
	}
}

func TestPlan_ZeroEstimateUsesGoal(t *testing.T) {
	p, err := NewService(nil, DefaultConfig(), nil).Plan(t.Context(), "Learn Python", Estimate{})
	require.NoError(t, err)

	// 24 default hours spread over three-hour days.
	assert.Len(t, p.Days, 8)
	assert.Equal(t, 3.0, p.Days[0].EstimatedHours)
}

func TestCleanScheduleText(t *testing.T) {
	tests := map[string]string{
		"Day 2 3h: Loops":            "Day 2: Loops",
		"Day 1 hands-on setup":       "Day 1 hands-on setup",
		"Study Period  Intro":        "Intro",
		"Daily Commitment Review":    "Review",
		"  Plain   focus  ":          "Plain focus",
		"7 day study period wrap up": "wrap up",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanScheduleText(in), "input %q", in)
	}
}
