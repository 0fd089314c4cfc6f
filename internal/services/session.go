package services

import (
	"errors"
	"math/rand"
	"time"

	"github.com/HerbSek/QuizMe/internal/models"

	"gorm.io/gorm"
)

const (
	gameCodeLength  = 6
	gameCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// 36^6 codes make collisions rare; the ceiling only guards against a
	// broken database or a pathologically full keyspace.
	maxCodeAttempts = 20

	DefaultQuestionTimeLimit = 30
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// SessionDetail is a GameSession plus the quiz's question count, so clients
// can render progress without a second request.
type SessionDetail struct {
	models.GameSession
	TotalQuestions int `json:"total_questions"`
}

type ParticipantInfo struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

type AnswerResult struct {
	IsCorrect bool `json:"is_correct"`
}

func generateGameCode() string {
	b := make([]byte, gameCodeLength)
	for i := range b {
		b[i] = gameCodeCharset[rand.Intn(len(gameCodeCharset))]
	}
	return string(b)
}

// CreateSession opens a new WAITING session for a quiz owned by hostID.
// Code uniqueness is enforced by the unique index on game_code: a
// duplicate-key error counts as a collision and triggers regeneration.
func (s *SessionService) CreateSession(quizID, hostID uint, questionTimeLimit int) (*models.GameSession, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND creator_id = ? AND is_active = ?", quizID, hostID, true).
		First(&quiz).Error; err != nil {
		return nil, ErrQuizNotFound
	}

	var questionCount int64
	s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&questionCount)
	if questionCount == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	if questionTimeLimit <= 0 {
		questionTimeLimit = DefaultQuestionTimeLimit
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		session := models.GameSession{
			QuizID:               quizID,
			HostID:               hostID,
			GameCode:             generateGameCode(),
			Status:               models.SessionStatusWaiting,
			CurrentQuestionIndex: 0,
			QuestionTimeLimit:    questionTimeLimit,
		}
		err := s.db.Create(&session).Error
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, ErrCodeSpaceExhausted
}

// JoinSession looks up a joinable session by code and records the caller on
// the roster. Joining is the sole participant-creation point and is
// idempotent per (session, user): a rejoin reactivates the existing row.
func (s *SessionService) JoinSession(gameCode string, userID uint) (*models.GameSession, error) {
	var session models.GameSession
	err := s.db.Where("game_code = ? AND status IN ?", gameCode,
		[]models.SessionStatus{models.SessionStatusWaiting, models.SessionStatusActive}).
		First(&session).Error
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var participant models.SessionParticipant
	err = s.db.Where("session_id = ? AND user_id = ?", session.ID, userID).
		First(&participant).Error
	switch {
	case err == nil:
		if !participant.IsActive {
			if err := s.db.Model(&participant).Update("is_active", true).Error; err != nil {
				return nil, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		participant = models.SessionParticipant{
			SessionID: session.ID,
			UserID:    userID,
			JoinedAt:  time.Now(),
			IsActive:  true,
		}
		if err := s.db.Create(&participant).Error; err != nil {
			// Concurrent join of the same user: the row exists now, which
			// is the state we wanted.
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	return &session, nil
}

func (s *SessionService) GetSession(sessionID uint) (*SessionDetail, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var questionCount int64
	s.db.Model(&models.Question{}).Where("quiz_id = ?", session.QuizID).Count(&questionCount)

	return &SessionDetail{
		GameSession:    session,
		TotalQuestions: int(questionCount),
	}, nil
}

func (s *SessionService) ListParticipants(sessionID uint) ([]ParticipantInfo, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var participants []ParticipantInfo
	err := s.db.Model(&models.SessionParticipant{}).
		Select("session_participants.user_id, users.username, session_participants.joined_at").
		Joins("JOIN users ON users.id = session_participants.user_id").
		Where("session_participants.session_id = ? AND session_participants.is_active = ?", sessionID, true).
		Order("session_participants.joined_at ASC").
		Scan(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// StartSession moves a WAITING session to ACTIVE and puts question 0 live.
func (s *SessionService) StartSession(sessionID, callerID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.HostID != callerID {
		return nil, ErrNotSessionHost
	}
	if session.Status != models.SessionStatusWaiting {
		return nil, ErrSessionNotWaiting
	}

	now := time.Now()
	session.Status = models.SessionStatusActive
	session.StartedAt = &now
	session.CurrentQuestionStartedAt = &now
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// AdvanceQuestion moves an ACTIVE session to its next question. Advancing
// past the last question finishes the session and leaves the index on the
// last question.
func (s *SessionService) AdvanceQuestion(sessionID, callerID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.HostID != callerID {
		return nil, ErrNotSessionHost
	}
	if session.Status != models.SessionStatusActive {
		return nil, ErrSessionNotActive
	}

	var questionCount int64
	s.db.Model(&models.Question{}).Where("quiz_id = ?", session.QuizID).Count(&questionCount)

	now := time.Now()
	if session.CurrentQuestionIndex >= int(questionCount)-1 {
		session.Status = models.SessionStatusFinished
		session.FinishedAt = &now
	} else {
		session.CurrentQuestionIndex++
		session.CurrentQuestionStartedAt = &now
	}
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession finishes a session regardless of its current status. Ending an
// already finished session just re-stamps finished_at.
func (s *SessionService) EndSession(sessionID, callerID uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.HostID != callerID {
		return nil, ErrNotSessionHost
	}

	now := time.Now()
	session.Status = models.SessionStatusFinished
	session.FinishedAt = &now
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// SubmitAnswer records one player's answer to one question. Correctness is
// frozen at write time from the option's flag, so later quiz edits never
// rewrite history. The unique index on (session, player, question) closes
// the race two concurrent submissions would open past the pre-check.
func (s *SessionService) SubmitAnswer(sessionID, playerID, questionID, optionID uint, answerTime *int) (*AnswerResult, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.SessionStatusActive {
		return nil, ErrSessionNotActive
	}

	var question models.Question
	if err := s.db.Where("id = ? AND quiz_id = ?", questionID, session.QuizID).
		First(&question).Error; err != nil {
		return nil, ErrQuestionNotInQuiz
	}

	var option models.Option
	if err := s.db.Where("id = ? AND question_id = ?", optionID, questionID).
		First(&option).Error; err != nil {
		return nil, ErrOptionNotInQuestion
	}

	var existing models.PlayerAnswer
	if err := s.db.Where("session_id = ? AND player_id = ? AND question_id = ?",
		sessionID, playerID, questionID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyAnswered
	}

	answer := models.PlayerAnswer{
		SessionID:        sessionID,
		PlayerID:         playerID,
		QuestionID:       questionID,
		SelectedOptionID: optionID,
		IsCorrect:        option.IsCorrect,
		AnswerTime:       answerTime,
		AnsweredAt:       time.Now(),
	}
	if err := s.db.Create(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAnswered
		}
		return nil, err
	}

	return &AnswerResult{IsCorrect: option.IsCorrect}, nil
}
