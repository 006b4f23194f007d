package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// APIError represents a standardized error response
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeEngineNotFound = "ENGINE_NOT_FOUND"
	ErrCodeEngineFailure  = "ENGINE_FAILURE"
	ErrCodeDatabase       = "DATABASE_ERROR"
	ErrCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrCodeTimeout        = "REQUEST_TIMEOUT"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrEngineNotFound = errors.New("engine not found")
	// ErrMissingResult marks a raw engine result lacking a field its contract guarantees.
	ErrMissingResult = errors.New("engine result incomplete")
)

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Unwrap exposes the underlying cause, typically ErrInvalidEnum.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every violation found in one record.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ConfigurationError reports a requested engine that is not installed.
// It is a programming or deployment fault, never a substitute-and-continue case.
type ConfigurationError struct {
	Engine EngineName
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no engine was found with the name: %s", e.Engine)
}

// Unwrap allows errors.Is(err, ErrEngineNotFound).
func (e *ConfigurationError) Unwrap() error {
	return ErrEngineNotFound
}

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
