package services

import (
	"github.com/HerbSek/QuizMe/internal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type OptionInput struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
	OrderNum  int    `json:"order_num"`
}

type QuestionInput struct {
	Text     string        `json:"text" binding:"required"`
	OrderNum int           `json:"order_num"`
	Options  []OptionInput `json:"options" binding:"required,min=2,dive"`
}

type QuizInput struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type QuizSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	CreatorID     uint   `json:"creator_id"`
	QuestionCount int    `json:"question_count"`
}

func (s *QuizService) CreateQuiz(creatorID uint, input QuizInput) (*models.Quiz, error) {
	quiz := models.Quiz{
		Title:       input.Title,
		Description: input.Description,
		CreatorID:   creatorID,
		IsActive:    true,
	}
	for _, q := range input.Questions {
		question := models.Question{
			Text:     q.Text,
			OrderNum: q.OrderNum,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
				OrderNum:  o.OrderNum,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) ListQuizzesByCreator(creatorID uint) ([]QuizSummary, error) {
	var quizzes []models.Quiz
	err := s.db.Where("creator_id = ? AND is_active = ?", creatorID, true).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	result := make([]QuizSummary, len(quizzes))
	for i, q := range quizzes {
		var questionCount int64
		s.db.Model(&models.Question{}).Where("quiz_id = ?", q.ID).Count(&questionCount)

		result[i] = QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			CreatorID:     q.CreatorID,
			QuestionCount: int(questionCount),
		}
	}
	return result, nil
}

func (s *QuizService) GetQuizByID(quizID, creatorID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND creator_id = ? AND is_active = ?", quizID, creatorID, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, ErrQuizNotFound
	}
	return &quiz, nil
}

// DeleteQuiz soft-deletes: the quiz disappears from listings and cannot host
// new sessions, but recorded sessions and answers keep their references.
func (s *QuizService) DeleteQuiz(quizID, creatorID uint) error {
	result := s.db.Model(&models.Quiz{}).
		Where("id = ? AND creator_id = ? AND is_active = ?", quizID, creatorID, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}
