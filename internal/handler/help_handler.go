package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// HelpHandler handles the support message endpoint.
type HelpHandler struct {
	helpService service.HelpService
}

// NewHelpHandler creates a new help handler.
func NewHelpHandler(helpService service.HelpService) *HelpHandler {
	return &HelpHandler{helpService: helpService}
}

// HelpMessageRequest represents a support message payload.
type HelpMessageRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// Submit godoc
// @Summary Submit a support message
// @Tags help
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HelpMessageRequest true "Message"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /help/message [post]
func (h *HelpHandler) Submit(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req HelpMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.helpService.Submit(c.Request().Context(), &model.HelpMessage{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store message",
			Code:  "INTERNAL_ERROR",
		})
	}
	return c.JSON(http.StatusCreated, map[string]string{"success": "message received"})
}
