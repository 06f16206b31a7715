package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/store"
)

func openArtifacts(t *testing.T) store.ArtifactRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "pipeline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.ArtifactRepo()
}

const goJSON = `{
	"goal": "Learn Go",
	"units": [
		{"title": "Basics", "lessons": ["Types", "Control flow"], "outcomes": ["Write small programs"]},
		{"title": "Concurrency", "lessons": ["Goroutines", "Channels", "Select"], "outcomes": ["Use channels safely"]}
	]
}`

func TestRun_RejectsBlankGoal(t *testing.T) {
	mock := llm.NewMockProvider()
	p := New(mock, DefaultConfig(), nil, nil)

	for _, goal := range []string{"", "   ", "\n\t"} {
		_, err := p.Run(t.Context(), Request{Goal: goal})
		assert.ErrorIs(t, err, ErrInvalidInput, "goal %q", goal)
	}
	_, err := p.Duration(" ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = p.Syllabus(t.Context(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, mock.CallCount(), "blank goals must not reach the model")
}

func TestRun_FallbackScenario(t *testing.T) {
	p := New(llm.Unconfigured(nil), DefaultConfig(), nil, nil)

	res, err := p.Run(t.Context(), Request{Goal: "  Learn React Native in 5 hours "})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Budget.TotalHours)
	assert.True(t, res.Budget.IsExplicitHourConstraint)

	s := res.Syllabus
	assert.Equal(t, "Learn React Native in 5 hours", s.Goal)
	assert.False(t, s.AIGenerated)
	assert.LessOrEqual(t, s.TotalLessons(), 5)
	assert.NotEmpty(t, s.Units)
	assert.Equal(t, 3, s.DurationConstraint.StudyHours)
	assert.Equal(t, "3 study hours", s.DurationConstraint.DurationText)

	assert.False(t, res.Plan.AIGenerated)
	assert.Equal(t, len(s.Units), res.Plan.TotalUnits)
	assert.InDelta(t, s.DurationConstraint.TotalHours, res.Plan.TotalHours, 1e-9)
}

func TestRun_ModelScenario(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(goJSON))
	p := New(mock, DefaultConfig(), nil, nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn Go in 10 hours"})
	require.NoError(t, err)

	assert.True(t, res.Syllabus.AIGenerated)
	assert.Equal(t, 5, res.Syllabus.TotalLessons(), "5 lessons fit in 7 study hours")
	assert.Equal(t, 7, res.Syllabus.DurationConstraint.StudyHours)
	assert.True(t, res.Plan.AIGenerated)
	assert.Equal(t, "Concurrency", res.Plan.Units[1].UnitTitle)
	assert.Equal(t, 1, mock.CallCount(), "enrichment is off by default")
}

func TestRun_FitsModelOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(goJSON))
	p := New(mock, DefaultConfig(), nil, nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn Go in 4 hours"})
	require.NoError(t, err)

	// 4h leaves 2 study hours for 5 lessons.
	assert.Equal(t, 2, res.Syllabus.DurationConstraint.StudyHours)
	for _, u := range res.Syllabus.Units {
		assert.Len(t, u.Lessons, 1)
	}
}

func TestRun_StudyHoursOverride(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(goJSON))
	p := New(mock, DefaultConfig(), nil, nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn Go in 4 hours", StudyHours: 4})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Budget.TotalHours, "the parsed budget is still reported")
	assert.Equal(t, 4, res.Syllabus.DurationConstraint.StudyHours)
	assert.Equal(t, "4 study hours", res.Syllabus.DurationConstraint.DurationText)
	assert.Equal(t, 3, res.Syllabus.TotalLessons())
}

func TestRun_EnrichedPlan(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(goJSON),
		llm.MockText(`{"lessons":[
			{"lesson_title":"Types","key_concepts":["Structs","Interfaces","Generics"],"important_topics":["Type sets"],"learning_objectives":["Define a struct"]},
			{"lesson_title":"Control flow","key_concepts":["for","switch","defer"],"important_topics":["Labels"],"learning_objectives":["Write a loop"]}
		]}`),
		llm.MockText(`{"lessons":[
			{"lesson_title":"Goroutines","key_concepts":["go statement","Scheduler","Stacks"],"important_topics":["Leaks"],"learning_objectives":["Start a goroutine"]},
			{"lesson_title":"Channels","key_concepts":["Buffering","Close","Range"],"important_topics":["Deadlock"],"learning_objectives":["Send and receive"]},
			{"lesson_title":"Select","key_concepts":["Timeouts","Default case","Fan-in"],"important_topics":["Cancellation"],"learning_objectives":["Multiplex channels"]}
		]}`),
	)
	cfg := DefaultConfig()
	cfg.LessonPlan.Enrich = true
	p := New(mock, cfg, nil, nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn Go in 10 hours"})
	require.NoError(t, err)

	assert.Equal(t, 3, mock.CallCount())
	assert.True(t, res.Plan.AIGenerated)
	assert.Equal(t, []string{"Timeouts", "Default case", "Fan-in"}, res.Plan.Units[1].Lessons[2].KeyConcepts)
}

func TestRun_SavesSessionArtifacts(t *testing.T) {
	p := New(nil, DefaultConfig(), openArtifacts(t), nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn SQL in 2 days", SessionID: "sess-1"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.SessionID)

	got, err := p.Latest(t.Context(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, res.Syllabus, got)

	plan, err := p.LatestPlan(t.Context(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, res.Plan.TotalUnits, plan.TotalUnits)
	assert.Equal(t, res.Plan.Units[0].UnitTitle, plan.Units[0].UnitTitle)

	_, err = p.Latest(t.Context(), "sess-2")
	assert.ErrorIs(t, err, ErrNotFound, "sessions must not see each other's output")
}

func TestRun_LatestIsNewest(t *testing.T) {
	p := New(nil, DefaultConfig(), openArtifacts(t), nil)

	_, err := p.Run(t.Context(), Request{Goal: "Learn SQL", SessionID: "s"})
	require.NoError(t, err)
	_, err = p.Run(t.Context(), Request{Goal: "Learn Rust", SessionID: "s"})
	require.NoError(t, err)

	got, err := p.Latest(t.Context(), "s")
	require.NoError(t, err)
	assert.Equal(t, "Learn Rust", got.Goal)
}

func TestRun_NoSessionNotSaved(t *testing.T) {
	p := New(nil, DefaultConfig(), openArtifacts(t), nil)

	_, err := p.Run(t.Context(), Request{Goal: "Learn SQL"})
	require.NoError(t, err)

	_, err = p.Latest(t.Context(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatest_WithoutRepo(t *testing.T) {
	p := New(nil, DefaultConfig(), nil, nil)
	_, err := p.Latest(t.Context(), "s")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.LatestPlan(t.Context(), "s")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingRepo struct{}

func (failingRepo) Save(context.Context, *store.Artifact) error {
	return errors.New("disk full")
}

func (failingRepo) Latest(context.Context, string, string) (*store.Artifact, error) {
	return nil, errors.New("disk full")
}

func TestRun_SaveFailureDoesNotFail(t *testing.T) {
	p := New(nil, DefaultConfig(), failingRepo{}, nil)

	res, err := p.Run(t.Context(), Request{Goal: "Learn SQL", SessionID: "s"})
	require.NoError(t, err)
	assert.NotNil(t, res.Plan)

	_, err = p.Latest(t.Context(), "s")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDurationAndSyllabus(t *testing.T) {
	p := New(nil, DefaultConfig(), nil, nil)

	b, err := p.Duration("Learn chess in 2 weeks")
	require.NoError(t, err)
	assert.Equal(t, 336, b.TotalHours)

	s, err := p.Syllabus(t.Context(), "Learn chess in 8 hours")
	require.NoError(t, err)
	assert.False(t, s.AIGenerated)
	assert.Equal(t, 8.0, s.DurationConstraint.TotalHours)
}
