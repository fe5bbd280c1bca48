package server

import (
	"fmt"
	"net/http"
	"strings"
)

// Messages returned to callers. Anything not listed here is reported as
// msgInternal.
const (
	msgInvalidJSON   = "Invalid JSON in request body"
	msgMissingFields = "Missing required fields: "
	msgNotConfigured = "OpenAI API key not configured"
	msgNoContent     = "No content generated"
	msgInternal      = "internal server error"
)

// apiError is the failure variant of a handler step. Message is sent to the
// caller; Cause is only logged.
type apiError struct {
	Status  int
	Message string
	Cause   error
}

func (e *apiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *apiError) Unwrap() error { return e.Cause }

func errInvalidJSON(cause error) *apiError {
	return &apiError{Status: http.StatusBadRequest, Message: msgInvalidJSON, Cause: cause}
}

func errMissingFields(names []string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Message: msgMissingFields + strings.Join(names, ", ")}
}

func errNotConfigured() *apiError {
	return &apiError{Status: http.StatusInternalServerError, Message: msgNotConfigured}
}

func errNoContent() *apiError {
	return &apiError{Status: http.StatusInternalServerError, Message: msgNoContent}
}

func errInternal(cause error) *apiError {
	return &apiError{Status: http.StatusInternalServerError, Message: msgInternal, Cause: cause}
}
