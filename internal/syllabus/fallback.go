package syllabus

import (
	"fmt"

	"github.com/abhisek/curricula/internal/duration"
)

// HoursPerLesson is the teaching time assumed for one placeholder lesson.
const HoursPerLesson = 1.5

const (
	minRealisticLessons = 3
	maxRealisticLessons = 20
)

// RealisticLessonCount is how many lessons fit in totalHours, clamped to
// [3, 20].
func RealisticLessonCount(totalHours int) int {
	n := int(float64(totalHours) / HoursPerLesson)
	return min(maxRealisticLessons, max(minRealisticLessons, n))
}

// shape picks a unit count and lessons per unit for a course of
// totalHours holding at most r lessons.
func shape(totalHours, r int) (units, perUnit int) {
	switch {
	case totalHours <= 8:
		units = max(1, min(3, r/2))
		perUnit = max(1, r/units)
	case totalHours <= 24:
		units = max(2, min(4, r/3))
		perUnit = max(2, r/units)
	default:
		units = max(3, min(6, r/4))
		perUnit = max(3, r/units)
	}
	if units*perUnit > r {
		perUnit = max(1, r/units)
	}
	return units, perUnit
}

// Fallback builds a placeholder syllabus sized to the budget without any
// model call. The result is a pure function of its inputs.
func Fallback(goal string, budget duration.Budget) *Syllabus {
	r := RealisticLessonCount(budget.TotalHours)
	unitCount, perUnit := shape(budget.TotalHours, r)

	units := make([]Unit, 0, unitCount)
	for i := range unitCount {
		var lessons []string
		for j := range perUnit {
			n := i*perUnit + j + 1
			if n > r {
				break
			}
			lessons = append(lessons, fmt.Sprintf("Lesson %d: Essential Concept %d", n, n))
		}
		if len(lessons) == 0 {
			continue
		}
		units = append(units, Unit{
			Title:   fmt.Sprintf("%s - Module %d", goal, i+1),
			Lessons: lessons,
			Outcomes: []string{
				fmt.Sprintf("Master core concepts of module %d", i+1),
				"Apply knowledge in practical scenarios",
				"Complete targeted exercises",
			},
		})
	}

	constraint := constraintFor(budget)
	constraint.RealisticLessonCount = r

	return &Syllabus{
		Goal:               goal,
		Units:              units,
		DurationConstraint: constraint,
	}
}

func constraintFor(budget duration.Budget) DurationConstraint {
	return DurationConstraint{
		TotalHours:   float64(budget.TotalHours),
		StudyHours:   studyHours(float64(budget.TotalHours)),
		DurationText: budget.Label,
	}
}
