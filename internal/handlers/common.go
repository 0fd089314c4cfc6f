package handlers

import (
	"errors"
	"net/http"

	"github.com/HerbSek/QuizMe/internal/models"
	"github.com/HerbSek/QuizMe/internal/services"

	"github.com/gin-gonic/gin"
)

// Type aliases so swag can resolve models in annotations.
type Quiz = models.Quiz
type GameSession = models.GameSession

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// missing resources are 404, authorization failures 403, state-machine and
// duplicate violations 409, structural mismatches 400.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotSessionHost):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrSessionNotWaiting),
		errors.Is(err, services.ErrSessionNotActive),
		errors.Is(err, services.ErrAlreadyAnswered):
		status = http.StatusConflict
	case errors.Is(err, services.ErrQuestionNotInQuiz),
		errors.Is(err, services.ErrOptionNotInQuestion),
		errors.Is(err, services.ErrQuizHasNoQuestions),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
