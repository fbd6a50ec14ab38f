package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is a business-rule violation carrying the HTTP status it maps to.
// Infrastructure errors are not APIErrors and surface as a generic 500.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// BadRequest returns a 400 validation error.
func BadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 authentication error.
func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 authorization error.
func Forbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 uniqueness-violation error.
func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

// CrossTenant is the uniform tenant-isolation violation. It is reported only
// for resources that exist; absent resources get NotFound first.
func CrossTenant() *APIError {
	return Forbidden("Cross-tenant access not allowed")
}

// Envelope is the standard API response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Respond maps err onto the response envelope. Typed APIErrors keep their
// status and message; anything else becomes a generic 500 so internal detail
// never leaks to the caller.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, Envelope{Success: false, Message: apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: "Internal server error"})
}

// RespondStatus sends a bare error envelope with the given status.
func RespondStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}
