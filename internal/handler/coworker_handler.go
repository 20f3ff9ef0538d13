package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// CoWorkerHandler handles co-worker directory endpoints.
type CoWorkerHandler struct {
	coWorkerService service.CoWorkerService
}

// NewCoWorkerHandler creates a new co-worker handler.
func NewCoWorkerHandler(coWorkerService service.CoWorkerService) *CoWorkerHandler {
	return &CoWorkerHandler{coWorkerService: coWorkerService}
}

// CoWorkerRequest represents a co-worker create/update payload.
type CoWorkerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

// Create godoc
// @Summary Create a co-worker
// @Tags co-workers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CoWorkerRequest true "Co-worker"
// @Success 201 {object} model.CoWorker
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /co-workers [post]
func (h *CoWorkerHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req CoWorkerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.coWorkerService.Create(c.Request().Context(), &model.CoWorker{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List co-workers
// @Tags co-workers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on name"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.CoWorker
// @Router /co-workers [get]
func (h *CoWorkerHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	coworkers, err := h.coWorkerService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, coworkers)
}

// Get godoc
// @Summary Get a co-worker by ID
// @Tags co-workers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Co-worker ID"
// @Success 200 {object} model.CoWorker
// @Failure 404 {object} errors.ErrorResponse
// @Router /co-workers/{id} [get]
func (h *CoWorkerHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	coworker, err := h.coWorkerService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, coworker)
}

// Update godoc
// @Summary Replace a co-worker
// @Tags co-workers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Co-worker ID"
// @Param request body CoWorkerRequest true "Co-worker"
// @Success 200 {object} model.CoWorker
// @Failure 404 {object} errors.ErrorResponse
// @Router /co-workers/{id} [put]
func (h *CoWorkerHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CoWorkerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.coWorkerService.Update(c.Request().Context(), &model.CoWorker{
		ID:     id,
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a co-worker
// @Tags co-workers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Co-worker ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /co-workers/{id} [delete]
func (h *CoWorkerHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.coWorkerService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "co-worker deleted"})
}
