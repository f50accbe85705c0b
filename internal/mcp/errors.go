package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "event not found", RecoveryHint: "Call list_events for valid ids"}
	case errors.Is(err, event.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_ID", Message: "event id already exists", RecoveryHint: "Omit id to generate one"}
	case errors.Is(err, event.ErrInvalidInput), errors.Is(err, countdown.ErrInvalidArgument):
		return &APIError{Code: "INVALID_ARGUMENT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts err into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
