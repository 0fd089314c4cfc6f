package models

import "time"

type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatorID   uint       `gorm:"not null;index" json:"creator_id"`
	Creator     User       `gorm:"foreignKey:CreatorID" json:"-"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
