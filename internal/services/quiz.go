package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Publisher-notfound/Rahoot/internal/game"
	"github.com/Publisher-notfound/Rahoot/internal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// CreateQuiz validates and stores a quiz document for a host.
func (s *QuizService) CreateQuiz(hostID uint, quiz *models.Quiz) error {
	if quiz.Genre == "" || quiz.Topic == "" || quiz.Name == "" {
		return errors.New("genre, topic and quiz name are required")
	}
	if len(quiz.Questions) == 0 {
		return errors.New("quiz must have at least one question")
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		q.OrderNum = i + 1
	}

	var existing models.Quiz
	err := s.db.Where("genre = ? AND topic = ? AND name = ?", quiz.Genre, quiz.Topic, quiz.Name).
		First(&existing).Error
	if err == nil {
		return errors.New("a quiz with this genre, topic and name already exists")
	}

	quiz.HostID = hostID
	return s.db.Create(quiz).Error
}

func validateQuestion(q *models.Question) error {
	if q.Prompt == "" {
		return errors.New("prompt is required")
	}
	if len(q.Answers) != 4 {
		return errors.New("exactly 4 answers are required")
	}
	if q.Solution < 0 || q.Solution > 3 {
		return errors.New("solution must be an answer index between 0 and 3")
	}
	if q.TimeLimit <= 0 {
		return errors.New("answer time must be positive")
	}
	if q.Cooldown <= 0 {
		return errors.New("reveal cooldown must be positive")
	}
	if q.Image != "" {
		u, err := url.Parse(q.Image)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.New("image must be an absolute http or https URL")
		}
	}
	return nil
}

func (s *QuizService) ListQuizzes(hostID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// QuizInfo is one entry in the public quiz catalog used by pickers.
type QuizInfo struct {
	Genre string `json:"genre"`
	Topic string `json:"topic"`
	Name  string `json:"quizName"`
}

func (s *QuizService) Catalog() ([]QuizInfo, error) {
	var infos []QuizInfo
	err := s.db.Model(&models.Quiz{}).
		Select("genre", "topic", "name").
		Order("genre, topic, name").
		Scan(&infos).Error
	return infos, err
}

func (s *QuizService) GetQuiz(id, hostID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND host_id = ?", id, hostID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, errors.New("quiz not found")
	}
	return &quiz, nil
}

func (s *QuizService) DeleteQuiz(id, hostID uint) error {
	result := s.db.Where("id = ? AND host_id = ?", id, hostID).Delete(&models.Quiz{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("quiz not found")
	}
	return s.db.Where("quiz_id = ?", id).Delete(&models.Question{}).Error
}

// Lookup resolves a stored quiz into the engine's document form. Implements
// the engine's QuizSource.
func (s *QuizService) Lookup(genre, topic, name string) (*game.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("genre = ? AND topic = ? AND name = ?", genre, topic, name).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, errors.New("quiz not found")
	}

	doc := &game.Quiz{
		Genre:     quiz.Genre,
		Topic:     quiz.Topic,
		Name:      quiz.Name,
		Questions: make([]game.Question, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		doc.Questions[i] = game.Question{
			Prompt:     q.Prompt,
			Answers:    q.Answers,
			Solution:   q.Solution,
			Time:       q.TimeLimit,
			Cooldown:   q.Cooldown,
			Image:      q.Image,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		}
	}
	return doc, nil
}
