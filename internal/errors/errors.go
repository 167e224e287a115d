package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIError is the JSON body sent for every failed request. Only Message is
// always present; Details carries field-level violations on 422 responses.
type APIError struct {
	Status  int         `json:"-"`
	Message string      `json:"message"`
	Details interface{} `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err *APIError) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, err)
}

// FieldViolation describes a single failed validation constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication failed!"
	}
	RespondWithError(c, NewAPIError(http.StatusUnauthorized, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found."
	}
	RespondWithError(c, NewAPIError(http.StatusNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request."
	}
	RespondWithError(c, NewAPIError(http.StatusBadRequest, message))
}

// Conflict sends a 422 response for duplicate resources
func Conflict(c *gin.Context, message string) {
	RespondWithError(c, NewAPIError(http.StatusUnprocessableEntity, message))
}

// InternalError sends a 500 response with a generic message, never internal detail
func InternalError(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusInternalServerError, "Something went wrong."))
}

// ValidationFailed sends a 422 response enumerating the violated constraints.
// err is expected to come out of gin's binding layer.
func ValidationFailed(c *gin.Context, err error) {
	apiErr := &APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "Invalid inputs passed, please check your data.",
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		violations := make([]FieldViolation, len(verrs))
		for i, verr := range verrs {
			violations[i] = FieldViolation{
				Field:   verr.Field(),
				Rule:    verr.Tag(),
				Message: verr.Error(),
			}
		}
		apiErr.Details = violations
	}

	RespondWithError(c, apiErr)
}
