package models

import "time"

type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	HostID    uint       `gorm:"not null;index" json:"host_id"`
	Host      Host       `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"-"`
	Genre     string     `gorm:"size:100;not null;uniqueIndex:idx_quiz_key" json:"genre"`
	Topic     string     `gorm:"size:100;not null;uniqueIndex:idx_quiz_key" json:"topic"`
	Name      string     `gorm:"size:255;not null;uniqueIndex:idx_quiz_key" json:"quiz_name"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
