package lessonplan

import (
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/syllabus"
)

const enrichSystemPrompt = `You are an experienced instructor writing a detailed lesson plan. You describe what each lesson teaches in concrete, specific terms.`

func buildEnrichUserMessage(course string, unit syllabus.Unit, lessonHours float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", course)
	fmt.Fprintf(&b, "Unit: %s\n", unit.Title)
	if len(unit.Outcomes) > 0 {
		b.WriteString("Unit outcomes:\n")
		for _, o := range unit.Outcomes {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}
	fmt.Fprintf(&b, "Each lesson lasts about %.1f hours.\n", lessonHours)

	b.WriteString("\nLessons:\n")
	for i, l := range unit.Lessons {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l)
	}

	b.WriteString(`
Instructions:
For every lesson above, in the same order:
1. List 3-5 key concepts specific to that lesson.
2. List up to 6 important topics to cover.
3. Write 3-4 learning objectives starting with a verb (Understand, Apply, Build, ...).
Respond ONLY with JSON matching the requested schema.`)

	return b.String()
}
