package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// TemplateHandler handles ritual template endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// TemplateItemRequest is one checklist entry in a template payload.
type TemplateItemRequest struct {
	ItemName string          `json:"itemname" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Note     string          `json:"note"`
}

// TemplateRequest represents a template create/update payload. The item list
// is the entire checklist; updates replace it wholesale.
type TemplateRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	Items       []TemplateItemRequest `json:"items" validate:"dive"`
}

func (r *TemplateRequest) toModel() *model.Template {
	template := &model.Template{
		Name:        r.Name,
		Description: r.Description,
	}
	for _, item := range r.Items {
		template.Items = append(template.Items, model.TemplateItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Note:     item.Note,
		})
	}
	return template
}

// Create godoc
// @Summary Create a ritual template with its item checklist
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TemplateRequest true "Template"
// @Success 201 {object} model.Template
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req TemplateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	template := req.toModel()
	template.UserID = userID

	created, err := h.templateService.Create(c.Request().Context(), template)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List ritual templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on name"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Template
// @Router /templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	templates, err := h.templateService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

// Get godoc
// @Summary Get a template by ID
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, template)
}

// Update godoc
// @Summary Replace a template and its checklist
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body TemplateRequest true "Template"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req TemplateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	template := req.toModel()
	template.ID = id
	template.UserID = userID

	updated, err := h.templateService.Update(c.Request().Context(), template)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a template and its checklist
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.templateService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "template deleted"})
}
