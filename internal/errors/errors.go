package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoteNotFound is returned when a note is not found.
	ErrNoteNotFound = errors.New("note not found")
	// ErrClientNotFound is returned when a client is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrCoWorkerNotFound is returned when a co-worker is not found.
	ErrCoWorkerNotFound = errors.New("co-worker not found")
	// ErrTemplateNotFound is returned when a ritual template is not found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrBillNotFound is returned when a bill is not found.
	ErrBillNotFound = errors.New("bill not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrPaymentNotFound is returned when a payment is not found.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateRecord is returned when an identical record already exists.
	ErrDuplicateRecord = errors.New("identical record already exists")
	// ErrInvalidOTP is returned when a password-recovery code is wrong or expired.
	ErrInvalidOTP = errors.New("invalid or expired recovery code")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrNoteNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case ErrClientNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLIENT_NOT_FOUND")
	case ErrCoWorkerNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COWORKER_NOT_FOUND")
	case ErrTemplateNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TEMPLATE_NOT_FOUND")
	case ErrBillNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BILL_NOT_FOUND")
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrPaymentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PAYMENT_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrDuplicateRecord:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_RECORD")
	case ErrInvalidOTP:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OTP")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
