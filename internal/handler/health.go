package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
)

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /api/v1/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Success: true,
		Message: "server is running",
	})
}
