package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/overview"
	"github.com/abhisek/curricula/internal/pipeline"
	"github.com/abhisek/curricula/internal/schedule"
	"github.com/abhisek/curricula/internal/syllabus"
)

type handlers struct {
	deps Deps
}

// goalRequest accepts "learning_goal" as an alias of "goal".
type goalRequest struct {
	Goal         string `json:"goal"`
	LearningGoal string `json:"learning_goal"`
}

func (r goalRequest) goal() string {
	if strings.TrimSpace(r.Goal) != "" {
		return r.Goal
	}
	return r.LearningGoal
}

// constrainedRequest carries an optional duration_constraint, usually an
// estimate returned by smart-duration.
type constrainedRequest struct {
	goalRequest
	DurationConstraint *schedule.Estimate `json:"duration_constraint"`
}

type fitRequest struct {
	Syllabus *syllabus.Syllabus `json:"syllabus"`
	MaxHours *int               `json:"max_hours"`
}

type expandRequest struct {
	Syllabus *syllabus.Syllabus `json:"syllabus"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// bindGoal decodes the body and rejects blank goals. It writes the 400
// itself and reports false.
func bindGoal(c *gin.Context) (string, bool) {
	var req goalRequest
	return bindGoalInto(c, &req)
}

func bindGoalInto(c *gin.Context, req interface{ goal() string }) (string, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "No JSON data received")
		return "", false
	}
	goal := strings.TrimSpace(req.goal())
	if goal == "" {
		respondError(c, http.StatusBadRequest, pipeline.ErrInvalidInput.Error())
		return "", false
	}
	return goal, true
}

func (h *handlers) health(c *gin.Context) {
	name := h.deps.ProviderName
	if !llm.Configured(h.deps.Provider) {
		name = ""
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"message":          "Lesson Plan Generator API is running",
		"gemini_available": llm.Configured(h.deps.Provider),
		"provider":         name,
	})
}

func (h *handlers) duration(c *gin.Context) {
	goal, ok := bindGoal(c)
	if !ok {
		return
	}
	budget, err := h.deps.Pipeline.Duration(goal)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *handlers) syllabus(c *gin.Context) {
	goal, ok := bindGoal(c)
	if !ok {
		return
	}
	s, err := h.deps.Pipeline.Syllabus(c.Request.Context(), goal)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) fit(c *gin.Context) {
	var req fitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "No JSON data received")
		return
	}
	if req.Syllabus == nil {
		respondError(c, http.StatusBadRequest, "syllabus is required")
		return
	}
	if req.MaxHours == nil || *req.MaxHours < 1 {
		respondError(c, http.StatusBadRequest, "max_hours must be a positive integer")
		return
	}
	c.JSON(http.StatusOK, syllabus.Fit(req.Syllabus, *req.MaxHours))
}

func (h *handlers) expand(c *gin.Context) {
	var req expandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "No JSON data received")
		return
	}
	if req.Syllabus == nil {
		respondError(c, http.StatusBadRequest, "syllabus is required")
		return
	}
	c.JSON(http.StatusOK, h.deps.Pipeline.Expand(c.Request.Context(), req.Syllabus))
}

func (h *handlers) generatePlan(c *gin.Context) {
	var req constrainedRequest
	goal, ok := bindGoalInto(c, &req)
	if !ok {
		return
	}
	var studyHours int
	if dc := req.DurationConstraint; dc != nil && dc.TotalHours > 0 {
		studyHours = dc.StudyHours
	}
	res, err := h.deps.Pipeline.Run(c.Request.Context(), pipeline.Request{
		Goal:       goal,
		SessionID:  sessionFrom(c),
		StudyHours: studyHours,
	})
	if errors.Is(err, pipeline.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate lesson plan: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, res.Plan)
}

func (h *handlers) smartDuration(c *gin.Context) {
	goal, ok := bindGoal(c)
	if !ok {
		return
	}
	est, err := h.deps.Schedule.Estimate(c.Request.Context(), goal)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"duration_constraint": est,
		"fallback_used":       !est.AIGenerated,
	})
}

func (h *handlers) studyPlan(c *gin.Context) {
	var req constrainedRequest
	goal, ok := bindGoalInto(c, &req)
	if !ok {
		return
	}
	var est schedule.Estimate
	if req.DurationConstraint != nil {
		est = *req.DurationConstraint
	}
	plan, err := h.deps.Schedule.Plan(c.Request.Context(), goal, est)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handlers) downloadSyllabus(c *gin.Context) {
	s, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"syllabus": s,
		"filename": syllabus.Filename(s.Goal, syllabus.FormatJSON),
	})
}

func (h *handlers) downloadPlan(c *gin.Context) {
	plan, err := h.deps.Pipeline.LatestPlan(c.Request.Context(), sessionFrom(c))
	if errors.Is(err, pipeline.ErrNotFound) {
		respondError(c, http.StatusBadRequest, "No lesson plan available. Generate a lesson plan first.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handlers) latest(c *gin.Context) (*syllabus.Syllabus, bool) {
	s, err := h.deps.Pipeline.Latest(c.Request.Context(), sessionFrom(c))
	if errors.Is(err, pipeline.ErrNotFound) {
		respondError(c, http.StatusBadRequest, "No syllabus available. Generate a lesson plan first.")
		return nil, false
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return s, true
}

func (h *handlers) goalOverview(c *gin.Context) {
	goal, ok := bindGoal(c)
	if !ok {
		return
	}
	ov, err := h.deps.Overview.Generate(c.Request.Context(), goal)
	if errors.Is(err, overview.ErrEmptyGoal) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, ov)
}
