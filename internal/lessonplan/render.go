package lessonplan

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/curricula/internal/ui/theme"
)

const (
	wideRule   = 60
	unitRule   = 50
	lessonRule = 40
)

type palette struct {
	title, heading, subheading, label, bullet, rule, hint func(string) string
}

func stylePalette(styled bool) palette {
	if !styled {
		return palette{
			title: theme.Plain, heading: theme.Plain, subheading: theme.Plain,
			label: theme.Plain, bullet: theme.Plain, rule: theme.Plain, hint: theme.Plain,
		}
	}
	with := func(s lipgloss.Style) func(string) string {
		return func(text string) string { return s.Render(text) }
	}
	return palette{
		title:      with(theme.Title),
		heading:    with(theme.Heading),
		subheading: with(theme.Subheading),
		label:      with(theme.Label),
		bullet:     with(theme.Bullet),
		rule:       with(theme.Rule),
		hint:       with(theme.Hint),
	}
}

// Render formats a plan as a text report. styled adds terminal colors.
func Render(p *Plan, styled bool) string {
	s := stylePalette(styled)
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	bullets := func(indent string, items []string) {
		for _, item := range items {
			line("%s%s %s", indent, s.bullet("•"), item)
		}
	}

	line("%s", s.title("COMPREHENSIVE LESSON PLAN"))
	line("%s", s.rule(strings.Repeat("=", wideRule)))
	line("")
	line("%s %s", s.label("COURSE:"), p.Course)
	line("%s %s", s.label("TOTAL DURATION:"), p.TotalEstimatedDuration)
	line("%s %d", s.label("TOTAL UNITS:"), p.TotalUnits)
	line("%s %s", s.label("GENERATED:"), p.GeneratedDate)
	if !p.AIGenerated {
		line("%s", s.hint("Built from templates; connect an LLM backend for tailored content."))
	}
	line("")
	line("%s", s.rule(strings.Repeat("=", wideRule)))
	line("%s", s.title("DETAILED UNIT-BY-UNIT LESSON PLAN"))
	line("%s", s.rule(strings.Repeat("=", wideRule)))
	line("")

	for _, unit := range p.Units {
		line("%s", s.heading(strings.ToUpper(unit.UnitTitle)))
		line("%s", s.rule(strings.Repeat("-", unitRule)))
		line("%s %s", s.label("Unit Objective:"), unit.UnitObjective)
		line("%s %s | %s %d", s.label("Duration:"), unit.UnitDuration, s.label("Lessons:"), unit.TotalLessons)
		line("")
		line("%s", s.label("Unit Outcomes:"))
		bullets("  ", unit.UnitOutcomes)
		line("")

		for _, lesson := range unit.Lessons {
			line("  %s", s.subheading(fmt.Sprintf("LESSON %d: %s", lesson.LessonNumber, lesson.LessonTitle)))
			line("     %s %s", s.label("Duration:"), lesson.LessonDuration)
			line("")
			line("     %s", s.label("Key Concepts:"))
			bullets("       ", lesson.KeyConcepts)
			line("")
			line("     %s", s.label("Important Topics:"))
			bullets("       ", lesson.ImportantTopics)
			line("")
			line("     %s", s.label("Time Breakdown:"))
			tb := lesson.TimeBreakdown
			bullets("       ", []string{
				fmt.Sprintf("Theory Concepts: %d minutes", tb.TheoryConcepts),
				fmt.Sprintf("Practical Exercises: %d minutes", tb.PracticalExercises),
				fmt.Sprintf("Examples Demonstrations: %d minutes", tb.ExamplesDemonstrations),
				fmt.Sprintf("Review Assessment: %d minutes", tb.ReviewAssessment),
			})
			line("")
			line("     %s", s.label("Learning Objectives:"))
			bullets("       ", lesson.LearningObjectives)
			line("")
			line("  %s", s.rule(strings.Repeat("-", lessonRule)))
			line("")
		}
		line("%s", s.rule(strings.Repeat("=", wideRule)))
		line("")
	}

	return b.String()
}
