// Package services provides the business logic layer between handlers and
// the analytics engine. Services enforce feature flags, consult the result
// cache, and publish insight events.
package services

import (
	"errors"

	"github.com/qualimetry/qualimetry/internal/analytics"
)

// Service error codes returned to handlers.
const (
	CodeFeatureDisabled  = "FEATURE_DISABLED"
	CodeEmptyInput       = "EMPTY_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeAnalysisFailed   = "ANALYSIS_FAILED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// mapEngineError converts an engine error into a coded ServiceError.
func mapEngineError(err error) *ServiceError {
	switch {
	case errors.Is(err, analytics.ErrEmptyInput):
		return NewServiceError(CodeEmptyInput, err.Error())
	case errors.Is(err, analytics.ErrInsufficientData):
		return NewServiceError(CodeInsufficientData, err.Error())
	case errors.Is(err, analytics.ErrInvalidInput):
		return NewServiceError(CodeInvalidInput, err.Error())
	default:
		return NewServiceError(CodeAnalysisFailed, err.Error())
	}
}
