package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/amityadav/studybuddy/internal/adk/tools"
	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/chat"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/settings"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// generationTimeout bounds one generation request end to end
const generationTimeout = 3 * time.Minute

type Researcher interface {
	Research(ctx context.Context, query string) (ai.ResearchReport, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, bool)
}

type Tutor interface {
	Ask(ctx context.Context, materialID, sessionID, message string) (chat.Reply, error)
}

// Services groups all service dependencies for REST handlers
type Services struct {
	Store        *store.Store
	Orchestrator *core.Orchestrator
	Library      *core.Library
	Learning     *core.LearningCore
	Tracker      *stats.Tracker
	Settings     *settings.Service
	Research     Researcher
	Dictionary   tools.WordLookup
	Videos       tools.VideoFinder
	Speech       Synthesizer
	Tutor        Tutor
}

// Handler serves the REST API
type Handler struct {
	svc Services
	log *logger.Logger
}

func NewHandler(svc Services, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{svc: svc, log: log.With("handler", "REST")}
}

func (h *Handler) Health(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

type createMaterialRequest struct {
	Title   string         `json:"title" binding:"required"`
	Content string         `json:"content" binding:"required_without=Images"`
	Context string         `json:"context"`
	Subject string         `json:"subject"`
	Images  []domain.Image `json:"images"`
	Modules core.Modules   `json:"modules"`
}

// POST /api/materials
// Missing module flags default to enabled.
func (h *Handler) CreateMaterial(c *gin.Context) {
	req := createMaterialRequest{Modules: core.AllModules()}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()
	id, err := h.svc.Orchestrator.Generate(ctx, core.GenerateRequest{
		Title:   req.Title,
		Content: req.Content,
		Context: req.Context,
		Images:  req.Images,
		Subject: req.Subject,
		Modules: req.Modules,
	})
	if err != nil {
		h.log.Warn("[REST.CreateMaterial] generation failed", "title", req.Title, "error", err)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// POST /api/audio-lessons
func (h *Handler) CreateAudioLesson(c *gin.Context) {
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()
	id, err := h.svc.Orchestrator.GenerateAudioLesson(ctx, core.AudioLessonRequest{
		Title:   req.Title,
		Content: req.Content,
		Context: req.Context,
		Images:  req.Images,
		Subject: req.Subject,
	})
	if err != nil {
		h.log.Warn("[REST.CreateAudioLesson] generation failed", "title", req.Title, "error", err)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/materials
func (h *Handler) ListMaterials(c *gin.Context) {
	RespondOK(c, h.svc.Library.ListMaterials(c.Request.Context()))
}

type materialResponse struct {
	core.Bundle
	Views    []core.View `json:"views"`
	Selected int         `json:"selected"`
}

// GET /api/materials/:id?view=N
// Out-of-range view indexes select the overview.
func (h *Handler) GetMaterial(c *gin.Context) {
	b, found := h.svc.Library.LoadBundle(c.Request.Context(), c.Param("id"))
	if !found {
		respondErr(c, store.ErrNotFound)
		return
	}
	selected, _ := strconv.Atoi(c.Query("view"))
	views := core.AvailableViews(b)
	RespondOK(c, materialResponse{
		Bundle:   b,
		Views:    views,
		Selected: core.ClampView(views, selected),
	})
}

// DELETE /api/materials/:id
func (h *Handler) DeleteMaterial(c *gin.Context) {
	if err := h.svc.Learning.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type gradeRequest struct {
	Difficulty domain.Difficulty `json:"difficulty" binding:"required"`
}

// POST /api/materials/:id/flashcards/:cardId/grade
func (h *Handler) GradeFlashcard(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	card, err := h.svc.Learning.GradeFlashcard(c.Request.Context(), c.Param("id"), c.Param("cardId"), req.Difficulty)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, card)
}

type completeQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// POST /api/materials/:id/quiz/complete
func (h *Handler) CompleteQuiz(c *gin.Context) {
	var req completeQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := h.svc.Learning.CompleteQuiz(c.Request.Context(), c.Param("id"), req.Answers)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/quiz-results
func (h *Handler) ListQuizResults(c *gin.Context) {
	RespondOK(c, h.svc.Store.QuizResults(c.Request.Context()))
}

// GET /api/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	RespondOK(c, h.svc.Store.Tasks(c.Request.Context()))
}

type createTaskRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Time  string `json:"time" binding:"omitempty,datetime=15:04"`
}

// POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	task := domain.Task{
		ID:    uuid.NewString(),
		Title: req.Title,
		Date:  req.Date,
		Time:  req.Time,
	}
	if err := h.svc.Store.AddTask(c.Request.Context(), task); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// PATCH /api/tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	if err := h.svc.Store.ToggleTask(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.svc.Store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	RespondOK(c, h.svc.Tracker.Current(c.Request.Context()))
}

// POST /api/stats/login
func (h *Handler) RecordLogin(c *gin.Context) {
	st, err := h.svc.Tracker.RecordLogin(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, st)
}

// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	RespondOK(c, h.svc.Settings.Get())
}

// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var next domain.AppSettings
	if err := c.ShouldBindJSON(&next); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.svc.Settings.Update(c.Request.Context(), next); err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, next)
}

// GET /api/dictionary/:word
func (h *Handler) Define(c *gin.Context) {
	entry, err := h.svc.Dictionary.Lookup(c.Request.Context(), c.Param("word"))
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, entry)
}

type videoQuery struct {
	Q string `form:"q" binding:"required"`
}

// GET /api/videos?q=
func (h *Handler) FindVideo(c *gin.Context) {
	var q videoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	video, err := h.svc.Videos.Search(c.Request.Context(), q.Q)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, video)
}

type researchRequest struct {
	Query string `json:"query" binding:"required"`
}

// POST /api/research
func (h *Handler) Research(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()
	report, err := h.svc.Research.Research(ctx, req.Query)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, report)
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// POST /api/speech
// Responds 204 when no audio could be produced.
func (h *Handler) Speak(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	wav, ok := h.svc.Speech.Synthesize(c.Request.Context(), req.Text)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "audio/wav", wav)
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
}

// POST /api/chat/:materialId
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	reply, err := h.svc.Tutor.Ask(c.Request.Context(), c.Param("materialId"), req.SessionID, req.Message)
	if err != nil {
		h.log.Warn("[REST.Chat] tutor failed", "material_id", c.Param("materialId"), "error", err)
		respondErr(c, err)
		return
	}
	RespondOK(c, reply)
}
