package handlers

import (
	"net/http"
	"strconv"

	"github.com/Publisher-notfound/Rahoot/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top godoc
// @Summary      Cross-session leaderboard, aggregated by player
// @Tags         leaderboard
// @Produce      json
// @Param        limit query int false "Maximum entries" default(10)
// @Success      200 {array} services.LeaderboardEntry
// @Router       /api/v1/leaderboard [get]
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.leaderboardService.Top(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
