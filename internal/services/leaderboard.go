package services

import (
	"errors"

	"github.com/Publisher-notfound/Rahoot/internal/models"

	"gorm.io/gorm"
)

// LeaderboardService persists finished-game scores and aggregates them
// across sessions. Implements the engine's ScoreRecorder.
type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

func (s *LeaderboardService) RecordScore(player string, score int, quizLabel string) error {
	if player == "" {
		return errors.New("player name is required")
	}
	record := models.ScoreRecord{
		PlayerName: player,
		Score:      score,
		QuizLabel:  quizLabel,
	}
	return s.db.Create(&record).Error
}

// LeaderboardEntry is one aggregated row of the cross-session leaderboard.
type LeaderboardEntry struct {
	PlayerName  string `json:"player_name"`
	TotalScore  int    `json:"total_score"`
	GamesPlayed int    `json:"games_played"`
	BestScore   int    `json:"best_score"`
}

func (s *LeaderboardService) Top(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var entries []LeaderboardEntry
	err := s.db.Model(&models.ScoreRecord{}).
		Select("player_name, SUM(score) AS total_score, COUNT(*) AS games_played, MAX(score) AS best_score").
		Group("player_name").
		Order("total_score DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
