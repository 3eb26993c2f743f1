package handlers

import (
	"net/http"
	"strconv"

	"github.com/Publisher-notfound/Rahoot/internal/models"
	"github.com/Publisher-notfound/Rahoot/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz godoc
// @Summary      Create a quiz document
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.Quiz true "Quiz with questions"
// @Success      200 {object} models.Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	hostID := c.GetUint("host_id")
	if err := h.quizService.CreateQuiz(hostID, &quiz); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes godoc
// @Summary      List the authenticated host's quizzes
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Quiz
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	hostID := c.GetUint("host_id")
	quizzes, err := h.quizService.ListQuizzes(hostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// Catalog godoc
// @Summary      Public quiz catalog (genre, topic, name)
// @Tags         quizzes
// @Produce      json
// @Success      200 {array} services.QuizInfo
// @Router       /api/v1/quizzes/catalog [get]
func (h *QuizHandler) Catalog(c *gin.Context) {
	infos, err := h.quizService.Catalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, infos)
}

// GetQuiz godoc
// @Summary      Get one quiz with its questions
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} models.Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	hostID := c.GetUint("host_id")
	quiz, err := h.quizService.GetQuiz(uint(id), hostID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	hostID := c.GetUint("host_id")
	if err := h.quizService.DeleteQuiz(uint(id), hostID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}
