package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteRequest represents a note create/update payload.
type NoteRequest struct {
	Person       string `json:"person" validate:"required"`
	Work         string `json:"work" validate:"required"`
	NoteText     string `json:"note_text"`
	NoteDate     string `json:"note_date" validate:"required"`
	ReminderDate string `json:"reminder_date"`
}

func (r *NoteRequest) toModel() (*model.Note, error) {
	noteDate, err := parseDate(r.NoteDate)
	if err != nil || noteDate == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "note_date must be YYYY-MM-DD or RFC 3339",
			Code:  "VALIDATION_ERROR",
		})
	}
	reminderDate, err := parseDate(r.ReminderDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "reminder_date must be YYYY-MM-DD or RFC 3339",
			Code:  "VALIDATION_ERROR",
		})
	}
	return &model.Note{
		Person:       r.Person,
		Work:         r.Work,
		NoteText:     r.NoteText,
		NoteDate:     *noteDate,
		ReminderDate: reminderDate,
	}, nil
}

// Create godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NoteRequest true "Note"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	note, err := req.toModel()
	if err != nil {
		return err
	}
	note.UserID = userID

	created, err := h.noteService.Create(c.Request().Context(), note)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search on person/work"
// @Param from query string false "Note date from"
// @Param to query string false "Note date to"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {array} model.Note
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Request().Context(), userID, listFilterFromQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// Get godoc
// @Summary Get a note by ID
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// Update godoc
// @Summary Replace a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body NoteRequest true "Note"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	note, err := req.toModel()
	if err != nil {
		return err
	}
	note.ID = id
	note.UserID = userID

	updated, err := h.noteService.Update(c.Request().Context(), note)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Request().Context(), userID, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"success": "note deleted"})
}
