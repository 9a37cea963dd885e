package apierror

import (
	"fmt"
	"net/http"
)

// ErrorResponse abstracts all dashboard error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for responses and not for logging circumstances.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError       = NewSimple(http.StatusNotFound, "Resource not found")

	MissingCompanyIDError = NewSimple(http.StatusBadRequest, "Parameter 'company_id' is required")
	MissingXMLPathError   = NewSimple(http.StatusBadRequest, "Parameter 'path' is required")
	InvalidXMLPathError   = NewSimple(http.StatusBadRequest, "The provided XML path is invalid")
	XMLStorageOffError    = NewSimple(http.StatusNotFound, "XML storage is not configured")
)

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewUnknownActionError(role string) *APIError {
	return NewSimple(http.StatusBadRequest, "Unknown row action '%s', expected one of: sync, docs", role)
}
