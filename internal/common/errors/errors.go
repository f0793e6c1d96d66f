// Package errors provides standardized error handling for the assistant service.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeInvalidCalculationInput ErrorCode = "INVALID_CALCULATION_INPUT"

	ErrCodeSchemaNotFound ErrorCode = "SCHEMA_NOT_FOUND"

	ErrCodeRulesetLoadFailed ErrorCode = "RULESET_LOAD_FAILED"
	ErrCodeRulesetInvalid    ErrorCode = "RULESET_INVALID"

	ErrCodeContextStoreUnavailable ErrorCode = "CONTEXT_STORE_UNAVAILABLE"
	ErrCodeContextEncodingFailed   ErrorCode = "CONTEXT_ENCODING_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeHistoryInsertFailed      ErrorCode = "HISTORY_INSERT_FAILED"
	ErrCodeHistoryQueryFailed       ErrorCode = "HISTORY_QUERY_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeHistoryDisabled          ErrorCode = "HISTORY_DISABLED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRequestValidationFailedError creates a non-retryable request validation error.
func NewRequestValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Request body validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCalculationInputError creates a non-retryable calculation input error.
func NewInvalidCalculationInputError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCalculationInput,
		Message:   "Calculation input is not usable",
		Details:   fmt.Sprintf("field: %s, %s", field, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaNotFoundError creates a non-retryable schema lookup error.
func NewSchemaNotFoundError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaNotFound,
		Message:   "No input schema registered for operation",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesetLoadFailedError creates a non-retryable ruleset load error.
func NewRulesetLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesetLoadFailed,
		Message:   "Intent ruleset file could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesetInvalidError creates a non-retryable ruleset validation error.
func NewRulesetInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesetInvalid,
		Message:   "Intent ruleset failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextStoreUnavailableError creates a retryable session store error.
func NewContextStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextStoreUnavailable,
		Message:   "Session context store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextEncodingFailedError creates a non-retryable context codec error.
func NewContextEncodingFailedError(sessionID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextEncodingFailed,
		Message:   "Session context could not be encoded or decoded",
		Details:   fmt.Sprintf("sessionId: %s, error: %s", sessionID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryInsertFailedError creates a retryable history insert error.
func NewHistoryInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryInsertFailed,
		Message:   "Calculation history insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryFailedError creates a retryable history query error.
func NewHistoryQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Calculation history query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryDisabledError creates a non-retryable error for history calls without a database.
func NewHistoryDisabledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryDisabled,
		Message:   "Calculation history is not configured",
		Details:   "no database connection was provided at startup",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Error Conversion for the API
// ==========================

// APIError is the wire form of a StandardError in HTTP responses.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// HTTPStatus maps an error code to the HTTP status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeRequestValidationFailed,
		ErrCodeInvalidCalculationInput,
		ErrCodeRulesetInvalid:
		return http.StatusBadRequest

	case ErrCodeSchemaNotFound:
		return http.StatusNotFound

	case ErrCodeHistoryDisabled:
		return http.StatusNotImplemented

	case ErrCodeContextStoreUnavailable,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeHistoryInsertFailed,
		ErrCodeHistoryQueryFailed,
		ErrCodeQueryTimeout:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// ToAPIError converts a StandardError to its HTTP response body.
func ToAPIError(stdErr *StandardError) *APIError {
	return &APIError{
		Code:    stdErr.Code,
		Message: stdErr.Message,
		Details: stdErr.Details,
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeContextStoreUnavailable,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeHistoryInsertFailed,
		ErrCodeHistoryQueryFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Validation and configuration errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RULESET"):
		return "RULESET"
	case strings.Contains(codeStr, "SCHEMA"):
		return "SCHEMA"
	case strings.Contains(codeStr, "CONTEXT"):
		return "SESSION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "HISTORY") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	default:
		return "OTHER"
	}
}
