package handlers

import (
	"net/http"
	"strconv"

	"github.com/HerbSek/QuizMe/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService     *services.SessionService
	leaderboardService *services.LeaderboardService
}

func NewSessionHandler(sessionService *services.SessionService, leaderboardService *services.LeaderboardService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, leaderboardService: leaderboardService}
}

type CreateSessionRequest struct {
	QuestionTimeLimit int `json:"question_time_limit" example:"30"`
}

type JoinSessionRequest struct {
	GameCode string `json:"game_code" binding:"required,len=6" example:"A1B2C3"`
}

type SubmitAnswerRequest struct {
	QuestionID       uint `json:"question_id" binding:"required" example:"1"`
	SelectedOptionID uint `json:"selected_option_id" binding:"required" example:"3"`
	AnswerTime       *int `json:"answer_time" example:"12"`
}

func sessionIDParam(c *gin.Context) (uint, bool) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return 0, false
	}
	return uint(sessionID), true
}

// CreateSession godoc
// @Summary      Create a game session
// @Description  Open a new WAITING session for one of the caller's quizzes; generates a join code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        quiz_id path int true "Quiz ID"
// @Param        request body CreateSessionRequest false "Session settings"
// @Success      201 {object} GameSession
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/start/{quiz_id} [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("quiz_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	session, err := h.sessionService.CreateSession(uint(quizID), userID, req.QuestionTimeLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// JoinSession godoc
// @Summary      Join a game session
// @Description  Join a WAITING or ACTIVE session by its join code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JoinSessionRequest true "Join data"
// @Success      200 {object} GameSession
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/join [post]
func (h *SessionHandler) JoinSession(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.JoinSession(req.GameCode, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSession godoc
// @Summary      Get session detail
// @Description  Get a session with its quiz's total question count
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} services.SessionDetail
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	detail, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListParticipants godoc
// @Summary      List session participants
// @Description  Get the active roster with usernames, ordered by join time
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {array} services.ParticipantInfo
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{id}/participants [get]
func (h *SessionHandler) ListParticipants(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	participants, err := h.sessionService.ListParticipants(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// StartSession godoc
// @Summary      Start a session
// @Description  Host-only: move the session from WAITING to ACTIVE with question 0 live
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/sessions/{id}/start [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.StartSession(sessionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// AdvanceQuestion godoc
// @Summary      Advance to the next question
// @Description  Host-only: increment the question index, or finish the session on the last question
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/sessions/{id}/advance [post]
func (h *SessionHandler) AdvanceQuestion(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.AdvanceQuestion(sessionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// EndSession godoc
// @Summary      End a session
// @Description  Host-only: finish the session regardless of its current status
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} GameSession
// @Failure      403 {object} ErrorResponse
// @Router       /api/sessions/{id}/end [post]
func (h *SessionHandler) EndSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.EndSession(sessionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SubmitAnswer godoc
// @Summary      Submit an answer
// @Description  Record the caller's answer to a question of the active session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body SubmitAnswerRequest true "Answer data"
// @Success      200 {object} services.AnswerResult
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/sessions/{id}/answer [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetUint("user_id")
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.sessionService.SubmitAnswer(sessionID, userID, req.QuestionID, req.SelectedOptionID, req.AnswerTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLeaderboard godoc
// @Summary      Get session leaderboard
// @Description  Ranked per-player stats: score desc, average answer time asc
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} services.Leaderboard
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{id}/leaderboard [get]
func (h *SessionHandler) GetLeaderboard(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	leaderboard, err := h.leaderboardService.GetLeaderboard(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}
