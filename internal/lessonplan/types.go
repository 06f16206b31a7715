package lessonplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/curricula/internal/syllabus"
)

// Plan is a syllabus expanded into per-lesson detail.
type Plan struct {
	Course                 string                      `json:"course"`
	GeneratedDate          string                      `json:"generated_date"`
	TotalEstimatedDuration string                      `json:"total_estimated_duration"`
	TotalHours             float64                     `json:"total_hours"`
	TotalUnits             int                         `json:"total_units"`
	DurationConstraint     syllabus.DurationConstraint `json:"duration_constraint"`
	Units                  UnitPlans                   `json:"units"`
	AIGenerated            bool                        `json:"ai_generated"`
}

// UnitPlan is one unit's share of the course.
type UnitPlan struct {
	UnitTitle     string         `json:"unit_title"`
	UnitObjective string         `json:"unit_objective"`
	UnitOutcomes  []string       `json:"unit_outcomes"`
	UnitDuration  string         `json:"unit_duration"`
	UnitHours     float64        `json:"unit_hours"`
	TotalLessons  int            `json:"total_lessons"`
	Lessons       []LessonDetail `json:"lessons"`
	Enriched      bool           `json:"ai_enriched"`
}

// LessonDetail is the expanded form of one lesson title.
type LessonDetail struct {
	LessonNumber       int           `json:"lesson_number"`
	LessonTitle        string        `json:"lesson_title"`
	LessonDuration     string        `json:"lesson_duration"`
	LessonHours        float64       `json:"lesson_hours"`
	KeyConcepts        []string      `json:"key_concepts"`
	ImportantTopics    []string      `json:"important_topics"`
	TimeBreakdown      TimeBreakdown `json:"time_breakdown"`
	LearningObjectives []string      `json:"learning_objectives"`
	Prerequisites      []string      `json:"prerequisites"`
	AssessmentMethods  []string      `json:"assessment_methods"`
}

// TimeBreakdown splits a lesson's minutes across four activities.
type TimeBreakdown struct {
	TheoryConcepts         Minutes `json:"theory_concepts"`
	PracticalExercises     Minutes `json:"practical_exercises"`
	ExamplesDemonstrations Minutes `json:"examples_demonstrations"`
	ReviewAssessment       Minutes `json:"review_assessment"`
}

// Total is the sum of the four buckets.
func (t TimeBreakdown) Total() Minutes {
	return t.TheoryConcepts + t.PracticalExercises + t.ExamplesDemonstrations + t.ReviewAssessment
}

// Minutes encodes as "N minutes".
type Minutes int

func (m Minutes) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d minutes", int(m))), nil
}

func (m *Minutes) UnmarshalText(b []byte) error {
	var n int
	if _, err := fmt.Sscanf(string(b), "%d minutes", &n); err != nil {
		return fmt.Errorf("parse minutes %q: %w", b, err)
	}
	*m = Minutes(n)
	return nil
}

// UnitPlans encodes as a JSON object keyed unit_1, unit_2, ... in
// course order.
type UnitPlans []UnitPlan

// UnitKey is the object key of the i-th unit (zero based).
func UnitKey(i int) string {
	return "unit_" + strconv.Itoa(i+1)
}

func (u UnitPlans) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, unit := range u {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(UnitKey(i))
		buf.Write(key)
		buf.WriteByte(':')
		body, err := json.Marshal(unit)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads units in document order.
func (u *UnitPlans) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*u = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("units: expected object, got %v", tok)
	}

	var out UnitPlans
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		var unit UnitPlan
		if err := dec.Decode(&unit); err != nil {
			return err
		}
		out = append(out, unit)
	}
	*u = out
	return nil
}
