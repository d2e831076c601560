package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me godoc
// @Summary Get the caller's own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{
		Success: true,
		Data:    profile.Public(),
	})
}

// UpdateMe godoc
// @Summary Update the caller's own name and bio
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/me [put]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{
		Success: true,
		Message: "profile updated successfully",
		Data:    profile.Public(),
	})
}
