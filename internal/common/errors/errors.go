// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserDataFetchFailed  ErrorCode = "USER_DATA_FETCH_FAILED"
	ErrCodeDataFetchTimeout     ErrorCode = "DATA_FETCH_TIMEOUT"
	ErrCodePredictionFailed     ErrorCode = "PREDICTION_FAILED"
	ErrCodeHistoryArchiveFailed ErrorCode = "HISTORY_ARCHIVE_FAILED"
	ErrCodeReportSendFailed     ErrorCode = "REPORT_SEND_FAILED"
	ErrCodeResourceLookupFailed ErrorCode = "RESOURCE_LOOKUP_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// AsStandardError extracts a StandardError from err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable input validation error.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false, nil)
}

// NewUserNotFoundError creates a non-retryable error for an unknown or inactive user.
func NewUserNotFoundError(userID string, cause error) *StandardError {
	return newError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("userId: %s", userID), false, cause).
		WithMetadata("userId", userID)
}

// NewUserDataFetchFailedError creates a retryable error for a failed read of user history.
func NewUserDataFetchFailedError(userID string, err error) *StandardError {
	return newError(ErrCodeUserDataFetchFailed, "Failed to fetch user data", detailsOf(err), true, err).
		WithMetadata("userId", userID)
}

// NewDataFetchTimeoutError creates a retryable timeout error.
func NewDataFetchTimeoutError(userID string, err error) *StandardError {
	return newError(ErrCodeDataFetchTimeout, "User data fetch timed out", detailsOf(err), true, err).
		WithMetadata("userId", userID)
}

// NewPredictionFailedError wraps unexpected failures while producing predictions.
func NewPredictionFailedError(err error) *StandardError {
	return newError(ErrCodePredictionFailed, "Failed to generate career predictions", detailsOf(err), false, err)
}

// NewHistoryArchiveFailedError creates a retryable snapshot indexing error.
func NewHistoryArchiveFailedError(err error) *StandardError {
	return newError(ErrCodeHistoryArchiveFailed, "Failed to archive prediction snapshot", detailsOf(err), true, err)
}

// NewReportSendFailedError creates a retryable delivery error for a report channel.
func NewReportSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeReportSendFailed, "Career report delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, detailsOf(err)), true, err).
		WithMetadata("channel", channel)
}

// NewResourceLookupFailedError creates a non-retryable learning resource error.
func NewResourceLookupFailedError(details string) *StandardError {
	return newError(ErrCodeResourceLookupFailed, "Failed to generate learning resources", details, false, nil)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", detailsOf(err), true, err)
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", detailsOf(err), true, err)
}

// NewInternalError wraps an error that carries no classification.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", detailsOf(err), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled in the
// career process diagrams. Codes not listed are passed through unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidRequest:       "INVALID_REQUEST",
	ErrCodeUserNotFound:         "USER_NOT_FOUND",
	ErrCodeUserDataFetchFailed:  "USER_DATA_UNAVAILABLE",
	ErrCodeDataFetchTimeout:     "USER_DATA_UNAVAILABLE",
	ErrCodePredictionFailed:     "PREDICTION_FAILED",
	ErrCodeHistoryArchiveFailed: "HISTORY_ARCHIVE_FAILED",
	ErrCodeReportSendFailed:     "REPORT_SEND_FAILED",
	ErrCodeResourceLookupFailed: "RESOURCE_LOOKUP_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeUserDataFetchFailed,
		ErrCodeHistoryArchiveFailed,
		ErrCodeReportSendFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed:
		return 3

	case ErrCodeDataFetchTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Retryable
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "NOT_FOUND"):
		return "VALIDATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "FETCH"):
		return "DATA"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "HISTORY"):
		return "SEARCH"
	case strings.Contains(codeStr, "REPORT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "PREDICTION") || strings.Contains(codeStr, "RESOURCE"):
		return "SCORING"
	default:
		return "OTHER"
	}
}
