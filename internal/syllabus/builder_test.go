package syllabus

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/llm"
)

const goJSON = `{
	"goal": "Learn Go",
	"units": [
		{"title": "Basics", "lessons": ["Types", "Control flow"], "outcomes": ["Write small programs"]},
		{"title": "Concurrency", "lessons": ["Goroutines", "Channels", "Select"], "outcomes": ["Use channels safely"]}
	]
}`

func TestBuilder_UsesModelOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(goJSON))
	b := NewBuilder(mock, DefaultConfig(), nil)

	s := b.Build(t.Context(), "Learn Go in 10 hours")

	if !s.AIGenerated {
		t.Fatal("expected AI generated syllabus")
	}
	if s.Goal != "Learn Go in 10 hours" {
		t.Errorf("goal = %q, want the user's goal", s.Goal)
	}
	if len(s.Units) != 2 || s.Units[1].Title != "Concurrency" {
		t.Fatalf("units = %+v", s.Units)
	}
	if !slices.Equal(s.Units[1].Lessons, []string{"Goroutines", "Channels", "Select"}) {
		t.Errorf("lessons = %v", s.Units[1].Lessons)
	}
	if s.DurationConstraint.TotalHours != 10 || s.DurationConstraint.StudyHours != 7 {
		t.Errorf("constraint = %+v", s.DurationConstraint)
	}

	call := mock.Calls[0]
	if call.Schema != Schema {
		t.Error("expected the syllabus schema on the request")
	}
	if call.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", call.MaxTokens)
	}
}

func TestBuilder_RecoversFencedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Here is the syllabus:\n```json\n" + goJSON + "\n```"))
	s := NewBuilder(mock, DefaultConfig(), nil).Build(t.Context(), "Learn Go")

	if !s.AIGenerated || len(s.Units) != 2 {
		t.Fatalf("expected model syllabus, got %+v", s)
	}
}

func TestBuilder_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"prose only", llm.MockText("I'd suggest starting with the basics of Go.")},
		{"no units", llm.MockText(`{"goal":"Learn Go","units":[]}`)},
		{"unit without lessons", llm.MockText(`{"goal":"g","units":[{"title":"A","lessons":[],"outcomes":[]}]}`)},
		{"blank lessons", llm.MockText(`{"goal":"g","units":[{"title":"A","lessons":["  "],"outcomes":[]}]}`)},
		{"schema violation", llm.MockText(`{"goal":"g","units":[{"title":"A"}]}`)},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}},
		{"upstream down", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}},
		{"truncated", llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}}},
	}

	goal := "Learn Go in 3 days"
	want := Fallback(goal, duration.Parse(goal))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(llm.NewMockProvider(tt.resp), DefaultConfig(), nil)
			s := b.Build(t.Context(), goal)

			if s.AIGenerated {
				t.Fatal("fallback marked as AI generated")
			}
			if !slices.Equal(lessonCounts(s), lessonCounts(want)) || s.Units[0].Title != want.Units[0].Title {
				t.Fatalf("expected fallback syllabus, got %+v", s)
			}
		})
	}
}

func TestBuilder_Unconfigured(t *testing.T) {
	for name, p := range map[string]llm.Provider{
		"nil":          nil,
		"unconfigured": llm.Unconfigured(nil),
	} {
		t.Run(name, func(t *testing.T) {
			s := NewBuilder(p, DefaultConfig(), nil).Build(context.Background(), "Complete Python mastery")
			if s.AIGenerated {
				t.Fatal("expected fallback")
			}
			if s.DurationConstraint.TotalHours != 40 {
				t.Fatalf("total hours = %v, want 40", s.DurationConstraint.TotalHours)
			}
			if len(s.Units) == 0 {
				t.Fatal("expected units")
			}
		})
	}
}

func TestBuilder_UsesGivenBudget(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(goJSON))
	b := NewBuilder(mock, DefaultConfig(), nil)

	s := b.BuildFor(t.Context(), "Learn Go", duration.Budget{TotalHours: 6, Label: "6 hours", IsExplicitHourConstraint: true})
	if s.DurationConstraint.TotalHours != 6 || s.DurationConstraint.DurationText != "6 hours" {
		t.Fatalf("constraint = %+v", s.DurationConstraint)
	}
}

func TestToUnits(t *testing.T) {
	units, err := toUnits([]unitOutput{{Title: " ", Lessons: []string{"a", "", " b "}, Outcomes: nil}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if units[0].Title != "Unit 1" {
		t.Errorf("title = %q", units[0].Title)
	}
	if !slices.Equal(units[0].Lessons, []string{"a", "b"}) {
		t.Errorf("lessons = %v", units[0].Lessons)
	}

	if _, err := toUnits(nil); !errors.Is(err, ErrNoUnits) {
		t.Errorf("expected ErrNoUnits, got %v", err)
	}
	if _, err := toUnits([]unitOutput{{Title: "A"}}); !errors.Is(err, ErrEmptyUnit) {
		t.Errorf("expected ErrEmptyUnit, got %v", err)
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage("React in 3 hours", duration.Parse("React in 3 hours"))
	for _, want := range []string{"React in 3 hours", "exactly 3 hours", "about 3 lessons"} {
		if !contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}

	msg = buildUserMessage("Go in 2 days", duration.Parse("Go in 2 days"))
	if contains(msg, "exactly") {
		t.Errorf("day budget should not be pinned to exact hours:\n%s", msg)
	}
}
