package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/HerbSek/QuizMe/internal/middleware"
	"github.com/HerbSek/QuizMe/internal/models"
	"github.com/HerbSek/QuizMe/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router  *gin.Engine
	auth    *services.AuthService
	quizzes *services.QuizService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "quizme.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.GameSession{},
		&models.SessionParticipant{},
		&models.PlayerAnswer{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	authService := services.NewAuthService(db, "test-secret")
	quizService := services.NewQuizService(db)
	sessionService := services.NewSessionService(db)
	leaderboardService := services.NewLeaderboardService(db)

	authHandler := NewAuthHandler(authService)
	quizHandler := NewQuizHandler(quizService)
	sessionHandler := NewSessionHandler(sessionService, leaderboardService)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/mine", quizHandler.ListMyQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(authService))
		{
			sessions.POST("/start/:quiz_id", sessionHandler.CreateSession)
			sessions.POST("/join", sessionHandler.JoinSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.GET("/:id/participants", sessionHandler.ListParticipants)
			sessions.POST("/:id/start", sessionHandler.StartSession)
			sessions.POST("/:id/advance", sessionHandler.AdvanceQuestion)
			sessions.POST("/:id/end", sessionHandler.EndSession)
			sessions.POST("/:id/answer", sessionHandler.SubmitAnswer)
			sessions.GET("/:id/leaderboard", sessionHandler.GetLeaderboard)
		}
	}

	return &testEnv{
		router:  r,
		auth:    authService,
		quizzes: quizService,
	}
}

// newUser registers through the service layer and returns the id and a token.
func (env *testEnv) newUser(t *testing.T, username string) (uint, string) {
	t.Helper()
	token, err := env.auth.Register(username, username+"@example.com", "password123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	userID, err := env.auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token for %s: %v", username, err)
	}
	return userID, token
}

func (env *testEnv) newQuiz(t *testing.T, creatorID uint, questions int) *models.Quiz {
	t.Helper()
	input := services.QuizInput{Title: "Quiz"}
	for i := 0; i < questions; i++ {
		input.Questions = append(input.Questions, services.QuestionInput{
			Text:     fmt.Sprintf("Q%d", i),
			OrderNum: i,
			Options: []services.OptionInput{
				{Text: "yes", IsCorrect: true, OrderNum: 0},
				{Text: "no", OrderNum: 1},
			},
		})
	}
	quiz, err := env.quizzes.CreateQuiz(creatorID, input)
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/quizzes/mine", "/api/sessions/1"} {
		if w := env.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
}

func TestSessionErrorStatusMapping(t *testing.T) {
	env := newTestEnv(t)
	hostID, hostToken := env.newUser(t, "host")
	_, playerToken := env.newUser(t, "player")
	quiz := env.newQuiz(t, hostID, 1)

	// Creating a session for someone else's quiz is a 404.
	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/start/%d", quiz.ID), playerToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign quiz session create = %d, want 404", w.Code)
	}

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/start/%d", quiz.ID), hostToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("session create = %d, want 201: %s", w.Code, w.Body.String())
	}
	var session models.GameSession
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	// Unknown join code is a 404.
	w = env.do(t, http.MethodPost, "/api/sessions/join", playerToken, gin.H{"game_code": "ZZZZZ9"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown code join = %d, want 404", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/sessions/join", playerToken, gin.H{"game_code": session.GameCode})
	if w.Code != http.StatusOK {
		t.Fatalf("join = %d, want 200: %s", w.Code, w.Body.String())
	}

	// Only the host may start; the player gets a 403.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/start", session.ID), playerToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("player start = %d, want 403", w.Code)
	}

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/start", session.ID), hostToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("host start = %d, want 200", w.Code)
	}

	// Starting twice violates the state machine: 409.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/start", session.ID), hostToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("double start = %d, want 409", w.Code)
	}
}

func TestAnswerFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	hostID, hostToken := env.newUser(t, "host")
	_, playerToken := env.newUser(t, "player")
	quiz := env.newQuiz(t, hostID, 2)
	q0 := quiz.Questions[0]
	right, wrong := q0.Options[0], q0.Options[1]

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/start/%d", quiz.ID), hostToken,
		gin.H{"question_time_limit": 20})
	var session models.GameSession
	json.Unmarshal(w.Body.Bytes(), &session)
	if session.QuestionTimeLimit != 20 {
		t.Fatalf("time limit = %d, want 20", session.QuestionTimeLimit)
	}

	env.do(t, http.MethodPost, "/api/sessions/join", playerToken, gin.H{"game_code": session.GameCode})

	answer := gin.H{"question_id": q0.ID, "selected_option_id": right.ID, "answer_time": 4}
	answerPath := fmt.Sprintf("/api/sessions/%d/answer", session.ID)

	// Session still waiting: 409.
	if w := env.do(t, http.MethodPost, answerPath, playerToken, answer); w.Code != http.StatusConflict {
		t.Fatalf("answer before start = %d, want 409", w.Code)
	}

	env.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/start", session.ID), hostToken, nil)

	// Option from the wrong question: 400.
	bad := gin.H{"question_id": q0.ID, "selected_option_id": quiz.Questions[1].Options[0].ID}
	if w := env.do(t, http.MethodPost, answerPath, playerToken, bad); w.Code != http.StatusBadRequest {
		t.Fatalf("mismatched option = %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodPost, answerPath, playerToken, answer)
	if w.Code != http.StatusOK {
		t.Fatalf("answer = %d, want 200: %s", w.Code, w.Body.String())
	}
	var result services.AnswerResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if !result.IsCorrect {
		t.Fatalf("correct answer reported wrong")
	}

	// Second answer to the same question: 409.
	dup := gin.H{"question_id": q0.ID, "selected_option_id": wrong.ID}
	if w := env.do(t, http.MethodPost, answerPath, playerToken, dup); w.Code != http.StatusConflict {
		t.Fatalf("duplicate answer = %d, want 409", w.Code)
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/sessions/%d/leaderboard", session.ID), hostToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard = %d, want 200", w.Code)
	}
	var board services.Leaderboard
	json.Unmarshal(w.Body.Bytes(), &board)
	if len(board.Entries) != 1 || board.Entries[0].Score != 1 {
		t.Fatalf("leaderboard = %+v, want single score-1 entry", board.Entries)
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/sessions/%d/participants", session.ID), hostToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("participants = %d, want 200", w.Code)
	}
	var roster []services.ParticipantInfo
	json.Unmarshal(w.Body.Bytes(), &roster)
	if len(roster) != 1 || roster[0].Username != "player" {
		t.Fatalf("roster = %+v, want only player", roster)
	}
}

func TestRegisterLoginOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "",
		gin.H{"username": "alice", "email": "alice@example.com", "password": "password123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "alice", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d, want 200", w.Code)
	}
	var resp AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
}
