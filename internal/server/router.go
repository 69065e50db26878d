package server

import (
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts every REST route under /api
func NewRouter(h *Handler, apiKey string, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.NewNop()
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(),
	)

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	api.Use(middleware.RequireAPIKey(apiKey))

	// Materials
	api.POST("/materials", h.CreateMaterial)
	api.POST("/audio-lessons", h.CreateAudioLesson)
	api.GET("/materials", h.ListMaterials)
	api.GET("/materials/:id", h.GetMaterial)
	api.DELETE("/materials/:id", h.DeleteMaterial)

	// Review
	api.POST("/materials/:id/flashcards/:cardId/grade", h.GradeFlashcard)
	api.POST("/materials/:id/quiz/complete", h.CompleteQuiz)
	api.GET("/quiz-results", h.ListQuizResults)

	// Planner
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks/:id/toggle", h.ToggleTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	// Progress
	api.GET("/stats", h.GetStats)
	api.POST("/stats/login", h.RecordLogin)
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)

	// Collaborators
	api.GET("/dictionary/:word", h.Define)
	api.GET("/videos", h.FindVideo)
	api.POST("/research", h.Research)
	api.POST("/speech", h.Speak)
	api.POST("/chat/:materialId", h.Chat)

	return router
}
