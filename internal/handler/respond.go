package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

// writeServiceError maps a service-layer error to a status code and a
// stable message. Internal fault details never reach the client.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: validationMessage(err)})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Message: "email already exists"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Message: "task not found"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Message: "server error"})
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "invalid input"
	}
	return msg
}
