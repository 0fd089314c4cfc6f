package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusWaiting  SessionStatus = "waiting"
	SessionStatusActive   SessionStatus = "active"
	SessionStatusFinished SessionStatus = "finished"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusWaiting, SessionStatusActive, SessionStatusFinished:
		return true
	}
	return false
}

type GameSession struct {
	ID                       uint          `gorm:"primaryKey" json:"id"`
	QuizID                   uint          `gorm:"not null;index" json:"quiz_id"`
	Quiz                     Quiz          `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	HostID                   uint          `gorm:"not null;index" json:"host_id"`
	GameCode                 string        `gorm:"size:6;uniqueIndex;not null" json:"game_code"`
	Status                   SessionStatus `gorm:"size:20;not null;default:'waiting'" json:"status"`
	CurrentQuestionIndex     int           `gorm:"not null;default:0" json:"current_question_index"`
	QuestionTimeLimit        int           `gorm:"not null;default:30" json:"question_time_limit"`
	CreatedAt                time.Time     `json:"created_at"`
	StartedAt                *time.Time    `json:"started_at,omitempty"`
	CurrentQuestionStartedAt *time.Time    `json:"current_question_started_at,omitempty"`
	FinishedAt               *time.Time    `json:"finished_at,omitempty"`
}

// AfterFind rejects rows whose status is not one of the three known values,
// so a bad write can never leak an unknown state into transition logic.
func (gs *GameSession) AfterFind(_ *gorm.DB) error {
	if !gs.Status.Valid() {
		return fmt.Errorf("game session %d has unknown status %q", gs.ID, gs.Status)
	}
	return nil
}
