package models

import "time"

type PlayerAnswer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SessionID        uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"session_id"`
	PlayerID         uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"player_id"`
	QuestionID       uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"question_id"`
	SelectedOptionID uint      `gorm:"not null" json:"selected_option_id"`
	IsCorrect        bool      `gorm:"not null" json:"is_correct"`
	AnswerTime       *int      `json:"answer_time,omitempty"`
	AnsweredAt       time.Time `json:"answered_at"`
}
