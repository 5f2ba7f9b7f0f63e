package utils

import (
	"fmt"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeInsufficientBudget  = "INSUFFICIENT_BUDGET"
	ErrCodeDuplicatePlayer     = "DUPLICATE_PLAYER"
	ErrCodeSlotMismatch        = "SLOT_MISMATCH"
	ErrCodeIncompleteFormation = "INCOMPLETE_FORMATION"
	ErrCodeUnknownFormation    = "UNKNOWN_FORMATION"
)
