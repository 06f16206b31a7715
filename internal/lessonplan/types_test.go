package lessonplan

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/curricula/internal/syllabus"
)

func TestPlanJSON_UnitsKeepOrder(t *testing.T) {
	s := &syllabus.Syllabus{Goal: "g", DurationConstraint: syllabus.DurationConstraint{TotalHours: 24}}
	for i := range 12 {
		s.Units = append(s.Units, syllabus.Unit{Title: fmt.Sprintf("Unit %d", i+1), Lessons: []string{"l"}})
	}
	plan := newTestExpander(nil, DefaultConfig()).Expand(t.Context(), s)

	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	if strings.Index(out, `"unit_2"`) > strings.Index(out, `"unit_10"`) {
		t.Fatalf("units out of order: %s", out)
	}
	if !strings.Contains(out, `"theory_concepts":"36 minutes"`) {
		t.Fatalf("expected minute strings: %s", out)
	}

	var back Plan
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Units) != 12 || back.Units[9].UnitTitle != "Unit 10" {
		t.Fatalf("units after round trip: %d", len(back.Units))
	}
	if back.Units[0].Lessons[0].TimeBreakdown != plan.Units[0].Lessons[0].TimeBreakdown {
		t.Fatalf("breakdown after round trip: %+v", back.Units[0].Lessons[0].TimeBreakdown)
	}
}

func TestMinutes_BadText(t *testing.T) {
	var m Minutes
	if err := m.UnmarshalText([]byte("half an hour")); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnitKey(t *testing.T) {
	if UnitKey(0) != "unit_1" || UnitKey(9) != "unit_10" {
		t.Fatalf("keys = %s, %s", UnitKey(0), UnitKey(9))
	}
}
