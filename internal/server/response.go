package server

import (
	"errors"
	"net/http"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/chat"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/dictionary"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/amityadav/studybuddy/internal/youtube"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: code},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps domain errors onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ai.ErrMissingCredential), errors.Is(err, youtube.ErrNotConfigured):
		return http.StatusServiceUnavailable, "not_configured"
	case errors.Is(err, core.ErrGenerationFailed), errors.Is(err, chat.ErrNoReply):
		return http.StatusBadGateway, "generation_failed"
	case errors.Is(err, store.ErrNotFound), errors.Is(err, dictionary.ErrNotFound), errors.Is(err, youtube.ErrNoResults):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, core.ErrEmptyQuiz), errors.Is(err, core.ErrEmptyQuery),
		errors.Is(err, core.ErrInvalidDifficulty), errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondErr(c *gin.Context, err error) {
	status, code := statusFor(err)
	RespondError(c, status, code, err)
}

func respondBadRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "invalid_request", err)
}
