package syllabus

import (
	"fmt"
	"math"
)

// Fit truncates lesson lists so the syllabus holds at most maxHours
// lessons, counting each lesson as one hour. Each unit keeps a prefix
// of its lessons and never fewer than one, so a syllabus with more units
// than maxHours stays above the limit. s is modified in place and
// returned.
//
// Each pass scales every unit by maxHours/total. Passes repeat until the
// total fits or every unit is down to one lesson, which makes Fit
// idempotent. Units whose share rounds below one lesson are clamped to one,
// so later passes cut the larger units harder than a single pass would:
// [1,1,1,10] fitted to 4 ends as [1,1,1,1], where one pass stops at
// [1,1,1,3].
func Fit(s *Syllabus, maxHours int) *Syllabus {
	for {
		total := s.TotalLessons()
		if total <= maxHours {
			return s
		}

		changed := false
		for i := range s.Units {
			n := len(s.Units[i].Lessons)
			if n == 0 {
				continue
			}
			keep := max(1, n*maxHours/total)
			if keep < n {
				s.Units[i].Lessons = s.Units[i].Lessons[:keep]
				changed = true
			}
		}
		if !changed {
			return s
		}
	}
}

// FitToBudget fits s to the study share of totalHours and rewrites its
// duration constraint. The new TotalHours is derived back from the study
// hours, so feeding it in again changes nothing.
func FitToBudget(s *Syllabus, totalHours float64) *Syllabus {
	return FitToStudyHours(s, studyHours(totalHours))
}

// FitToStudyHours fits s to an explicit number of study hours, raised to
// one, and rewrites its duration constraint to match.
func FitToStudyHours(s *Syllabus, hours int) *Syllabus {
	target := max(1, hours)
	Fit(s, target)
	s.DurationConstraint = DurationConstraint{
		TotalHours:   float64(target) / StudyShare,
		StudyHours:   target,
		DurationText: fmt.Sprintf("%d study hours", target),
	}
	return s
}

// studyHours is the whole number of study hours in total. The epsilon
// absorbs float error such as 70*0.7 = 48.99999999999999.
func studyHours(total float64) int {
	return int(math.Floor(total*StudyShare + 1e-9))
}
