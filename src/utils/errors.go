package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceError to define return exception for system
type ServiceError struct {
	StatusCode int
	Message    string
	// Existing carries the conflicting record for 409 responses.
	Existing interface{}
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed input (400).
func NewValidationError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewNotFoundError reports an absent entity or upstream lookup (404).
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: message}
}

// NewConflictError reports a slug collision; existing is echoed to the client.
func NewConflictError(message string, existing interface{}) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: message, Existing: existing}
}

// NewUpstreamError wraps a media store or TMDB failure (500). The cause's
// message is surfaced to the caller.
func NewUpstreamError(message string, err error) *ServiceError {
	msg := message
	if err != nil {
		msg = message + ": " + err.Error()
	}
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: msg, Err: err}
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	var se *ServiceError
	if errors.As(err, &se) && se.StatusCode != 0 {
		return se.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 ServiceError.
func IsNotFound(err error) bool {
	return err != nil && StatusOf(err) == http.StatusNotFound
}

// RespondError writes the {"error": ...} envelope for any error.
func RespondError(c *gin.Context, err error) {
	var se *ServiceError
	if !errors.As(err, &se) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{"error": se.Error()}
	if se.Existing != nil {
		body["existing"] = se.Existing
	}
	status := se.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, body)
}
