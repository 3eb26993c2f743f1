package models

import "time"

// ScoreRecord is one finished-game result on the cross-session leaderboard.
type ScoreRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlayerName string    `gorm:"size:100;not null;index" json:"player_name"`
	Score      int       `gorm:"not null" json:"score"`
	QuizLabel  string    `gorm:"size:255;not null" json:"quiz_label"`
	CreatedAt  time.Time `json:"created_at"`
}
