package services

import (
	"testing"

	"github.com/Publisher-notfound/Rahoot/internal/models"

	"github.com/stretchr/testify/assert"
)

func validQuestion() models.Question {
	return models.Question{
		Prompt:    "What is the SI unit of force?",
		Answers:   []string{"Joule", "Newton", "Watt", "Pascal"},
		Solution:  1,
		TimeLimit: 15,
		Cooldown:  5,
	}
}

func TestValidateQuestion(t *testing.T) {
	t.Run("valid question passes", func(t *testing.T) {
		q := validQuestion()
		assert.NoError(t, validateQuestion(&q))
	})

	t.Run("missing prompt", func(t *testing.T) {
		q := validQuestion()
		q.Prompt = ""
		assert.ErrorContains(t, validateQuestion(&q), "prompt is required")
	})

	t.Run("wrong answer count", func(t *testing.T) {
		q := validQuestion()
		q.Answers = []string{"Yes", "No"}
		assert.ErrorContains(t, validateQuestion(&q), "exactly 4 answers")
	})

	t.Run("solution out of range", func(t *testing.T) {
		q := validQuestion()
		q.Solution = 4
		assert.ErrorContains(t, validateQuestion(&q), "between 0 and 3")
	})

	t.Run("non-positive answer time", func(t *testing.T) {
		q := validQuestion()
		q.TimeLimit = 0
		assert.ErrorContains(t, validateQuestion(&q), "answer time")
	})

	t.Run("relative image url rejected", func(t *testing.T) {
		q := validQuestion()
		q.Image = "/uploads/picture.png"
		assert.ErrorContains(t, validateQuestion(&q), "absolute http or https URL")
	})

	t.Run("absolute image url accepted", func(t *testing.T) {
		q := validQuestion()
		q.Image = "https://example.org/picture.png"
		assert.NoError(t, validateQuestion(&q))
	})
}
