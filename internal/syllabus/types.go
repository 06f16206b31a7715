package syllabus

// Syllabus is an ordered list of units built for one learning goal.
type Syllabus struct {
	Goal               string             `json:"goal" yaml:"goal"`
	Units              []Unit             `json:"units" yaml:"units"`
	DurationConstraint DurationConstraint `json:"duration_constraint" yaml:"duration_constraint"`
	AIGenerated        bool               `json:"ai_generated" yaml:"ai_generated"`
}

// Unit groups lesson titles under a heading. Lesson order is curriculum
// order.
type Unit struct {
	Title    string   `json:"title" yaml:"title"`
	Lessons  []string `json:"lessons" yaml:"lessons"`
	Outcomes []string `json:"outcomes" yaml:"outcomes"`
}

// DurationConstraint summarizes the hour budget a syllabus was sized for.
// StudyHours is roughly 70% of TotalHours; the rest is practice.
type DurationConstraint struct {
	TotalHours           float64 `json:"total_hours" yaml:"total_hours"`
	StudyHours           int     `json:"study_hours" yaml:"study_hours"`
	DurationText         string  `json:"duration_text" yaml:"duration_text"`
	RealisticLessonCount int     `json:"realistic_lesson_count,omitempty" yaml:"realistic_lesson_count,omitempty"`
}

// StudyShare is the fraction of total hours spent on new material.
const StudyShare = 0.7

// TotalLessons counts lessons across all units.
func (s *Syllabus) TotalLessons() int {
	n := 0
	for _, u := range s.Units {
		n += len(u.Lessons)
	}
	return n
}

// Clone returns a deep copy of s.
func (s *Syllabus) Clone() *Syllabus {
	out := *s
	out.Units = make([]Unit, len(s.Units))
	for i, u := range s.Units {
		out.Units[i] = Unit{
			Title:    u.Title,
			Lessons:  append([]string(nil), u.Lessons...),
			Outcomes: append([]string(nil), u.Outcomes...),
		}
	}
	return &out
}
