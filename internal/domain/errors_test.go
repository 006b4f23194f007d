package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(ErrCodeEngineNotFound, "Engine not installed", "no engine was found with the name: X99", "req-123")

	if err.Code != ErrCodeEngineNotFound {
		t.Errorf("Expected code %s, got %s", ErrCodeEngineNotFound, err.Code)
	}
	if err.RequestID != "req-123" {
		t.Errorf("Expected request ID req-123, got %s", err.RequestID)
	}
	if err.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}

	expected := "ENGINE_NOT_FOUND: Engine not installed"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("age", "must not be negative", -1)

	expected := "validation error for field 'age': must not be negative"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}
	if err.Value != -1 {
		t.Errorf("Expected value -1, got %v", err.Value)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		NewValidationError("sex", "unknown value \"\"", ""),
		NewValidationError("requestedEngines", "at least one engine is required", nil),
	}

	msg := errs.Error()
	if !strings.Contains(msg, "'sex'") || !strings.Contains(msg, "'requestedEngines'") {
		t.Errorf("Expected both fields in message, got %s", msg)
	}

	var wrapped error = fmt.Errorf("validating input: %w", errs)
	var target ValidationErrors
	if !errors.As(wrapped, &target) || len(target) != 2 {
		t.Errorf("Expected errors.As to recover both violations")
	}
}

func TestConfigurationError(t *testing.T) {
	var err error = &ConfigurationError{Engine: "QStroke"}

	if err.Error() != "no engine was found with the name: QStroke" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(fmt.Errorf("predict: %w", err), ErrEngineNotFound) {
		t.Error("Expected ConfigurationError to match ErrEngineNotFound")
	}
}
