package schedule

import (
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/duration"
)

const systemPrompt = `You are a study coach. You plan realistic, achievable study schedules and never stretch a time limit the learner gave you.`

func buildEstimateMessage(goal string, budget duration.Budget) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learning goal: %q\n", goal)
	if budget.IsExplicitHourConstraint {
		fmt.Fprintf(&b, `
The learner asked for exactly %d hours. Do not convert this to days or weeks.
Plan for the most essential topics only, with brief hands-on practice inside the limit.
total_study_hours MUST be %d.
`, budget.TotalHours, budget.TotalHours)
	} else {
		fmt.Fprintf(&b, `
Parsed time budget: %s. Suggest a realistic duration considering:
- the complexity of the topic and its prerequisites
- practical versus theoretical focus
- 2 to 4 hours of study a day
- time for practice and review
`, budget.Label)
	}

	b.WriteString(`
Respond ONLY with JSON in this format:
{
  "total_days": 1,
  "daily_study_hours": 3,
  "total_study_hours": 3,
  "difficulty_level": "beginner|intermediate|advanced|intensive",
  "rationale": "brief explanation",
  "recommended_pace": "gentle|moderate|intensive",
  "is_realistic": true,
  "respects_time_constraint": true
}`)
	return b.String()
}

func buildPlanMessage(goal string, est Estimate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a daily study plan for this learning goal: %q\n\n", goal)
	fmt.Fprintf(&b, "Duration: %d days\n", est.TotalDays)
	fmt.Fprintf(&b, "Daily study time: %g hours\n", est.DailyStudyHours)
	fmt.Fprintf(&b, "Total study hours: %d\n", est.StudyHours)
	fmt.Fprintf(&b, "Difficulty: %s\n", orDefault(est.DifficultyLevel, "intermediate"))
	fmt.Fprintf(&b, "Pace: %s\n", orDefault(est.RecommendedPace, "moderate"))

	fmt.Fprintf(&b, `
Build knowledge progressively over exactly %d days. Each day needs:
- specific, achievable learning objectives
- the key topics to cover, most important first
- hands-on practice activities
- a break schedule

Name days by content only. Do not put hours in focus areas or day names.

Respond ONLY with JSON in this format:
{
  "study_plan": [
    {
      "day": 1,
      "focus_area": "main topic for the day",
      "learning_objectives": ["objective 1", "objective 2"],
      "key_topics": ["topic 1", "topic 2"],
      "practice_activities": ["activity 1", "activity 2"],
      "break_recommendations": "25 minutes study, 5 minutes break",
      "estimated_hours": 3
    }
  ],
  "learning_strategy": "overall approach",
  "success_tips": ["tip 1", "tip 2", "tip 3"]
}`, est.TotalDays)
	return b.String()
}
