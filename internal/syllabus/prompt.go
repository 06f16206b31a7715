package syllabus

import (
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/duration"
)

const systemPrompt = `You are an experienced curriculum designer. You turn a learner's goal into a practical, well-structured syllabus that fits the time they have.`

func buildUserMessage(goal string, budget duration.Budget) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learning goal: %s\n", goal)
	fmt.Fprintf(&b, "Time available: %s (%d hours in total)\n", budget.Label, budget.TotalHours)
	if budget.IsExplicitHourConstraint {
		fmt.Fprintf(&b, "The learner asked for exactly %d hours. Do not stretch the plan into days or weeks.\n", budget.TotalHours)
	}
	fmt.Fprintf(&b, "Aim for about %d lessons of roughly %.1f hours each.\n", RealisticLessonCount(budget.TotalHours), HoursPerLesson)

	b.WriteString(`
Instructions:
1. Split the goal into units in the order they should be taught.
2. Give every unit a short title, at least one lesson title, and 2-4 outcomes.
3. Prefer practical, hands-on lessons. Cover the essentials first.
4. Respond ONLY with JSON in this format:
{
  "goal": "the learning goal",
  "units": [
    {
      "title": "Unit title",
      "lessons": ["Lesson 1", "Lesson 2"],
      "outcomes": ["Outcome 1", "Outcome 2"]
    }
  ]
}`)

	return b.String()
}
