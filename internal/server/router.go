package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route on a fresh engine.
func NewRouter(deps Deps) *gin.Engine {
	h := &handlers{deps: deps}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Log))
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/duration", h.duration)
		api.POST("/syllabus", h.syllabus)
		api.POST("/fit", h.fit)
		api.POST("/expand", h.expand)
		api.POST("/generate-plan", SessionID(true), h.generatePlan)
		api.GET("/download-syllabus", SessionID(false), h.downloadSyllabus)
		api.GET("/download-plan", SessionID(false), h.downloadPlan)
		api.POST("/goal-overview", h.goalOverview)
	}

	ai := api.Group("/ai")
	{
		ai.POST("/goal-overview", h.goalOverview)
		ai.POST("/smart-duration", h.smartDuration)
		ai.POST("/study-plan", h.studyPlan)
	}
	return r
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, SessionHeader)
	cfg.ExposeHeaders = []string{SessionHeader}
	return cfg
}
