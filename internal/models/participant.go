package models

import "time"

type SessionParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;uniqueIndex:idx_session_user" json:"session_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_session_user" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}
