package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// ClientHandler handles client directory endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest represents a client create/update payload.
type ClientRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
}

func (r *ClientRequest) toModel() *model.Client {
	return &model.Client{
		Name:        r.Name,
		Description: r.Description,
		Email:       r.Email,
		Phone:       r.Phone,
		City:        r.City,
		State:       r.State,
		Zipcode:     r.Zipcode,
	}
}

// Create godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ClientRequest true "Client"
// @Success 201 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req ClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	client := req.toModel()
	client.UserID = userID

	created, err := h.clientService.Create(c.Request().Context(), client)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on name/city"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Client
// @Router /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, client)
}

// Update godoc
// @Summary Replace a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body ClientRequest true "Client"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	client := req.toModel()
	client.ID = id
	client.UserID = userID

	updated, err := h.clientService.Update(c.Request().Context(), client)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.clientService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "client deleted"})
}
