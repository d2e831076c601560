package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTaskRequest true "Task fields"
// @Success 201 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
		return
	}

	task, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.TaskResponse{
		Success: true,
		Message: "task created successfully",
		Data:    task,
	})
}

// ListTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring over title or description"
// @Param status query string false "pending | in-progress | completed"
// @Param priority query string false "low | medium | high"
// @Param sort query string false "newest (default) | oldest | priority"
// @Success 200 {object} model.TaskListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	filter := model.TaskFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Sort:     c.Query("sort"),
	}

	tasks, err := h.svc.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Data:    tasks,
	})
}

// GetTask godoc
// @Summary Get one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.TaskResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	task, err := h.svc.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TaskResponse{
		Success: true,
		Data:    task,
	})
}

// UpdateTask godoc
// @Summary Update one of the caller's tasks
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body model.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
		return
	}

	task, err := h.svc.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TaskResponse{
		Success: true,
		Message: "task updated successfully",
		Data:    task,
	})
}

// DeleteTask godoc
// @Summary Delete one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.DeleteResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeleteResponse{
		Success: true,
		Message: "task deleted successfully",
	})
}
