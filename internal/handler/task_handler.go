package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest represents a task create/update payload.
type TaskRequest struct {
	Name      string          `json:"name" validate:"required"`
	Date      string          `json:"date" validate:"required"`
	Self      *bool           `json:"self"`
	Place     string          `json:"place"`
	TaskOwner string          `json:"task_owner"`
	Money     decimal.Decimal `json:"money"`
	Completed bool            `json:"completed"`
}

func (r *TaskRequest) toModel() (*model.Task, error) {
	date, err := parseDate(r.Date)
	if err != nil || date == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "date must be YYYY-MM-DD or RFC 3339",
			Code:  "VALIDATION_ERROR",
		})
	}
	self := true
	if r.Self != nil {
		self = *r.Self
	}
	return &model.Task{
		Name:      r.Name,
		Date:      *date,
		Self:      self,
		Place:     r.Place,
		TaskOwner: r.TaskOwner,
		Money:     r.Money,
		Completed: r.Completed,
	}, nil
}

// CompleteRequest toggles a task's completed flag.
type CompleteRequest struct {
	Completed bool `json:"completed"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskRequest true "Task"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	task, err := req.toModel()
	if err != nil {
		return err
	}
	task.UserID = userID

	created, err := h.taskService.Create(c.Request().Context(), task)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "Filter by completion"
// @Param search query string false "Text search on name/place"
// @Param from query string false "Task date from"
// @Param to query string false "Task date to"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Task
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var completed *bool
	if v := c.QueryParam("completed"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "completed must be true or false",
				Code:  "VALIDATION_ERROR",
			})
		}
		completed = &parsed
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID, completed, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Replace a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "Task"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	task, err := req.toModel()
	if err != nil {
		return err
	}
	task.ID = id
	task.UserID = userID

	updated, err := h.taskService.Update(c.Request().Context(), task)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Complete godoc
// @Summary Set a task's completed flag
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body CompleteRequest true "Completed flag"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.taskService.SetCompleted(c.Request().Context(), userID, id, req.Completed); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "task updated"})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "task deleted"})
}
