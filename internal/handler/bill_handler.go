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

// BillHandler handles bill endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// BillItemRequest is one line item in a bill payload.
type BillItemRequest struct {
	ItemName     string          `json:"itemname" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	MarketRate   decimal.Decimal `json:"marketrate"`
	ExtraCharges decimal.Decimal `json:"extracharges"`
	Note         string          `json:"note"`
}

// BillRequest represents a bill create/update payload. The total is always
// recomputed server-side from the items.
type BillRequest struct {
	Name          string            `json:"name" validate:"required"`
	TemplateID    string            `json:"template_id"`
	PaymentStatus string            `json:"paymentstatus" validate:"omitempty,oneof=PENDING COMPLETED"`
	Items         []BillItemRequest `json:"items" validate:"dive"`
}

func (r *BillRequest) toModel() (*model.Bill, error) {
	bill := &model.Bill{
		Name:          r.Name,
		PaymentStatus: model.BillStatus(r.PaymentStatus),
	}
	if r.TemplateID != "" {
		templateID, err := uuid.Parse(r.TemplateID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid template_id",
				Code:  "INVALID_UUID",
			})
		}
		bill.TemplateID = &templateID
	}
	for _, item := range r.Items {
		bill.Items = append(bill.Items, model.BillItem{
			ItemName:     item.ItemName,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			MarketRate:   item.MarketRate,
			ExtraCharges: item.ExtraCharges,
			Note:         item.Note,
		})
	}
	return bill, nil
}

// Create godoc
// @Summary Create a bill with line items
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BillRequest true "Bill"
// @Success 201 {object} model.Bill
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bills [post]
func (h *BillHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req BillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bill, err := req.toModel()
	if err != nil {
		return err
	}
	bill.UserID = userID

	created, err := h.billService.Create(c.Request().Context(), bill)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List bills
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on name"
// @Param from query string false "Created from"
// @Param to query string false "Created to"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Bill
// @Router /bills [get]
func (h *BillHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	bills, err := h.billService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, bills)
}

// Get godoc
// @Summary Get a bill by ID
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} model.Bill
// @Failure 404 {object} errors.ErrorResponse
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	bill, err := h.billService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, bill)
}

// Update godoc
// @Summary Replace a bill and its line items
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param request body BillRequest true "Bill"
// @Success 200 {object} model.Bill
// @Failure 404 {object} errors.ErrorResponse
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req BillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bill, err := req.toModel()
	if err != nil {
		return err
	}
	bill.ID = id
	bill.UserID = userID

	updated, err := h.billService.Update(c.Request().Context(), bill)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a bill and its line items
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.billService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "bill deleted"})
}
