package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRequest represents a payment create/update payload.
type PaymentRequest struct {
	BillID        string          `json:"bill_id"`
	TotalAmount   decimal.Decimal `json:"totalamount"`
	PaidAmount    decimal.Decimal `json:"paidamount"`
	PaymentDate   string          `json:"paymentdate" validate:"required"`
	PaymentMode   string          `json:"paymentmode"`
	PaymentStatus string          `json:"paymentstatus" validate:"omitempty,oneof=PENDING COMPLETED"`
}

func (r *PaymentRequest) toModel() (*model.Payment, error) {
	date, err := parseDate(r.PaymentDate)
	if err != nil || date == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "paymentdate must be YYYY-MM-DD or RFC 3339",
			Code:  "VALIDATION_ERROR",
		})
	}
	payment := &model.Payment{
		TotalAmount:   r.TotalAmount,
		PaidAmount:    r.PaidAmount,
		PaymentDate:   *date,
		PaymentMode:   r.PaymentMode,
		PaymentStatus: model.PaymentStatus(r.PaymentStatus),
	}
	if r.BillID != "" {
		billID, err := uuid.Parse(r.BillID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid bill_id",
				Code:  "INVALID_UUID",
			})
		}
		payment.BillID = &billID
	}
	return payment, nil
}

// Create godoc
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := req.toModel()
	if err != nil {
		return err
	}
	payment.UserID = userID

	created, err := h.paymentService.Create(c.Request().Context(), payment)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on payment mode"
// @Param from query string false "Payment date from"
// @Param to query string false "Payment date to"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Payment
// @Router /payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Get godoc
// @Summary Get a payment by ID
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} model.Payment
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Update godoc
// @Summary Replace a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body PaymentRequest true "Payment"
// @Success 200 {object} model.Payment
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := req.toModel()
	if err != nil {
		return err
	}
	payment.ID = id
	payment.UserID = userID

	updated, err := h.paymentService.Update(c.Request().Context(), payment)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "payment deleted"})
}
