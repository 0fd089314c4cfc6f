package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/HerbSek/QuizMe/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

// createTestQuiz builds a quiz with questionCount questions of two options
// each; the first option of every question is the correct one.
func createTestQuiz(t *testing.T, db *gorm.DB, creatorID uint, questionCount int) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{
		Title:     "Test Quiz",
		CreatorID: creatorID,
		IsActive:  true,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			Text:     fmt.Sprintf("Question %d", i+1),
			OrderNum: i,
			Options: []models.Option{
				{Text: "Right", IsCorrect: true, OrderNum: 0},
				{Text: "Wrong", IsCorrect: false, OrderNum: 1},
			},
		})
	}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return &quiz
}
