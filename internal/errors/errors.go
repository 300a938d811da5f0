package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError is an error that already knows its HTTP status and code
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Is matches another APIError with the same code, so wrapped copies of the
// predefined errors still satisfy errors.Is
func (e *APIError) Is(target error) bool {
	var other *APIError
	if !errors.As(target, &other) {
		return false
	}
	return e.ErrorCode == other.ErrorCode
}

// ValidationError describes one rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidParameter   = "INVALID_PARAMETER"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeDatasetNotLoaded   = "DATASET_NOT_LOADED"
	CodeDatasetSchema      = "DATASET_SCHEMA_INVALID"
	CodeDatasetLoad        = "DATASET_LOAD_FAILED"
	CodeExportFailed       = "EXPORT_FAILED"
)

// Predefined errors
var (
	ErrInvalidRequest     = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrValidationFailed   = New(http.StatusBadRequest, CodeValidationFailed, "Request validation failed")
	ErrInvalidParameter   = New(http.StatusBadRequest, CodeInvalidParameter, "Invalid parameter value")
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")
	ErrInternalServer     = New(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred while processing your request")

	// ErrDatasetNotLoaded is returned while no dataset has been loaded
	// successfully, or after a reload failed
	ErrDatasetNotLoaded = New(http.StatusServiceUnavailable, CodeDatasetNotLoaded, "No dataset is loaded")
)

// InvalidParameterError reports a query or path parameter that failed to parse
func InvalidParameterError(name string, err error) *APIError {
	return NewWithDetails(ErrInvalidParameter.StatusCode, ErrInvalidParameter.ErrorCode,
		fmt.Sprintf("invalid value for parameter %q", name),
		ValidationError{Field: name, Message: err.Error()})
}

// NewValidationErrors creates a 400 error listing every rejected field
func NewValidationErrors(fields []ValidationError) *APIError {
	return NewWithDetails(ErrValidationFailed.StatusCode, ErrValidationFailed.ErrorCode, ErrValidationFailed.Message, fields)
}

// FromValidator converts validator/v10 errors to field descriptions
func FromValidator(verrs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fieldName(fe),
			Message: validationMessage(fe),
		})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return strings.ToLower(fe.StructField())
	}
	return name
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
