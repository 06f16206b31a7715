package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/curricula/internal/lessonplan"
	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/overview"
	"github.com/abhisek/curricula/internal/pipeline"
	"github.com/abhisek/curricula/internal/schedule"
	"github.com/abhisek/curricula/internal/store"
	"github.com/abhisek/curricula/internal/syllabus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(Deps{
		Pipeline:     pipeline.New(provider, pipeline.DefaultConfig(), st.ArtifactRepo(), nil),
		Overview:     overview.NewService(provider, nil),
		Schedule:     schedule.NewService(provider, schedule.DefaultConfig(), nil),
		Provider:     provider,
		ProviderName: "mock",
	})
}

func do(t *testing.T, s *Server, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["gemini_available"])
	assert.Equal(t, "", body["provider"])

	w = do(t, newTestServer(t, llm.NewMockProvider()), http.MethodGet, "/api/health", nil, nil)
	body = decode[map[string]any](t, w)
	assert.Equal(t, true, body["gemini_available"])
	assert.Equal(t, "mock", body["provider"])
}

func TestBlankGoalIsBadRequest(t *testing.T) {
	s := newTestServer(t, nil)
	for _, path := range []string{
		"/api/duration", "/api/syllabus", "/api/generate-plan", "/api/goal-overview",
		"/api/ai/smart-duration", "/api/ai/study-plan",
	} {
		t.Run(path, func(t *testing.T) {
			w := do(t, s, http.MethodPost, path, map[string]string{"goal": "  "}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[errorResponse](t, w).Error)

			w = do(t, s, http.MethodPost, path, "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "empty body")
		})
	}
}

func TestDuration(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodPost, "/api/duration", map[string]string{"learning_goal": "Learn Go in 3 days"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, float64(72), body["total_hours"])
	assert.Equal(t, "3 days", body["label"])
	assert.Equal(t, false, body["is_explicit_hour_constraint"])
}

func TestSyllabusFitExpand(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/api/syllabus", map[string]string{"goal": "Learn Go in 20 hours"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	built := decode[syllabus.Syllabus](t, w)
	assert.False(t, built.AIGenerated)
	assert.NotEmpty(t, built.Units)

	w = do(t, s, http.MethodPost, "/api/fit", map[string]any{"syllabus": built, "max_hours": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fitted := decode[syllabus.Syllabus](t, w)
	for _, u := range fitted.Units {
		assert.Len(t, u.Lessons, 1)
	}

	w = do(t, s, http.MethodPost, "/api/expand", map[string]any{"syllabus": fitted}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unit_1"`)
	plan := decode[lessonplan.Plan](t, w)
	assert.Equal(t, len(fitted.Units), plan.TotalUnits)
}

func TestFitValidation(t *testing.T) {
	s := newTestServer(t, nil)
	syl := syllabus.Syllabus{Goal: "g", Units: []syllabus.Unit{{Title: "u", Lessons: []string{"a"}}}}

	tests := []struct {
		name string
		body any
	}{
		{"missing syllabus", map[string]any{"max_hours": 3}},
		{"missing hours", map[string]any{"syllabus": syl}},
		{"zero hours", map[string]any{"syllabus": syl, "max_hours": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/fit", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGeneratePlanAndDownload(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/api/generate-plan", map[string]string{"goal": "Learn React Native in 5 hours"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	session := w.Header().Get(SessionHeader)
	require.NotEmpty(t, session, "a new session id is issued")

	plan := decode[lessonplan.Plan](t, w)
	assert.Equal(t, "Learn React Native in 5 hours", plan.Course)
	assert.False(t, plan.AIGenerated)

	w = do(t, s, http.MethodGet, "/api/download-syllabus", nil, http.Header{SessionHeader: {session}})
	require.Equal(t, http.StatusOK, w.Code)
	dl := decode[struct {
		Syllabus syllabus.Syllabus `json:"syllabus"`
		Filename string            `json:"filename"`
	}](t, w)
	assert.Equal(t, "Learn_React_Native_in_5_hours_syllabus.json", dl.Filename)
	assert.Equal(t, 3, dl.Syllabus.DurationConstraint.StudyHours)

	w = do(t, s, http.MethodGet, "/api/download-syllabus?session="+session, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code, "query parameter works too")

	w = do(t, s, http.MethodGet, "/api/download-plan", nil, http.Header{SessionHeader: {session}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plan.TotalUnits, decode[lessonplan.Plan](t, w).TotalUnits)
}

func TestGeneratePlanKeepsGivenSession(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodPost, "/api/generate-plan", map[string]string{"goal": "Learn SQL"}, http.Header{SessionHeader: {"abc"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Header().Get(SessionHeader))
}

func TestGeneratePlanStudyHours(t *testing.T) {
	tests := []struct {
		name       string
		constraint map[string]any
		want       int
	}{
		{"estimate applied", map[string]any{"totalHours": 10, "studyHours": 7}, 7},
		{"no total hours", map[string]any{"studyHours": 7}, 3},
		{"no constraint", nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			body := map[string]any{"goal": "Learn React Native in 5 hours"}
			if tt.constraint != nil {
				body["duration_constraint"] = tt.constraint
			}
			w := do(t, s, http.MethodPost, "/api/generate-plan", body, nil)
			require.Equal(t, http.StatusOK, w.Code)

			w = do(t, s, http.MethodGet, "/api/download-syllabus", nil, http.Header{SessionHeader: {w.Header().Get(SessionHeader)}})
			require.Equal(t, http.StatusOK, w.Code)
			dl := decode[struct {
				Syllabus syllabus.Syllabus `json:"syllabus"`
			}](t, w)
			assert.Equal(t, tt.want, dl.Syllabus.DurationConstraint.StudyHours)
			assert.LessOrEqual(t, dl.Syllabus.TotalLessons(), max(tt.want, len(dl.Syllabus.Units)))
		})
	}
}

func TestSmartDuration(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodPost, "/api/ai/smart-duration", map[string]string{"learning_goal": "Learn React in 5 hours"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Constraint   schedule.Estimate `json:"duration_constraint"`
		FallbackUsed bool              `json:"fallback_used"`
	}](t, w)
	assert.True(t, body.FallbackUsed)
	assert.Equal(t, 1, body.Constraint.TotalDays)
	assert.Equal(t, 5, body.Constraint.StudyHours)
	assert.Equal(t, schedule.ConstraintHours, body.Constraint.ConstraintType)
	assert.False(t, body.Constraint.AIGenerated)
	assert.Contains(t, w.Body.String(), `"studyHours":5`)
}

func TestStudyPlan(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/api/ai/study-plan", map[string]any{
		"learning_goal":       "Learn Go",
		"duration_constraint": map[string]any{"totalDays": 3, "dailyStudyHours": 2},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[schedule.StudyPlan](t, w)
	require.Len(t, plan.Days, 3)
	assert.Equal(t, "Review & Projects", plan.Days[2].FocusArea)
	assert.Equal(t, 2.0, plan.Days[0].EstimatedHours)
	assert.False(t, plan.AIGenerated)

	w = do(t, s, http.MethodPost, "/api/ai/study-plan", map[string]string{"goal": "Learn Python"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[schedule.StudyPlan](t, w).Days, 8, "estimated from the goal")
}

func TestDownloadWithoutPlan(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/download-syllabus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/download-syllabus", nil, http.Header{SessionHeader: {"never-used"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorResponse](t, w).Error, "Generate a lesson plan first")
}

func TestGoalOverview(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodPost, "/api/goal-overview", map[string]string{"goal": "Learn Go"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ov := decode[overview.Overview](t, w)
	assert.False(t, ov.AIGenerated)
	assert.True(t, strings.HasPrefix(ov.Text, "Your goal 'Learn Go' sounds exciting!"))

	mock := llm.NewMockProvider(llm.MockText("Go is fun."))
	w = do(t, newTestServer(t, mock), http.MethodPost, "/api/ai/goal-overview", map[string]string{"goal": "Learn Go"}, nil)
	ov = decode[overview.Overview](t, w)
	assert.True(t, ov.AIGenerated)
	assert.Equal(t, "Go is fun.", ov.Text)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := gin.New()
	r.Use(SessionID(false), RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/bad", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		req.Header.Set(SessionHeader, "s1")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[2].ContextMap()
	assert.Equal(t, "/boom", fields["path"])
	assert.Equal(t, int64(500), fields["status"])
	assert.Equal(t, "s1", fields["session"])
}
