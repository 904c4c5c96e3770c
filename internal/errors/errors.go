package errors

import (
	"errors"
	"fmt"

	"invsettle/pkg/contracts/domain"
)

// ErrorType classifies application errors for logging and triage.
type ErrorType string

const (
	ErrTypeQuantity   ErrorType = "QUANTITY"
	ErrTypeDate       ErrorType = "DATE"
	ErrTypeNumeric    ErrorType = "NUMERIC"
	ErrTypeExtraction ErrorType = "EXTRACTION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

// AppError is the application-wide error carrier. Parse errors attach the
// offending row or token so an unrecognized invoice layout can be triaged
// from the log alone.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a diagnostic key/value to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewQuantityNotFoundError reports a row whose tokens never satisfied the
// ordered-quantity heuristic. Fatal for the whole batch: the row shape is an
// invoice layout the parser does not understand.
func NewQuantityNotFoundError(row domain.Row) *AppError {
	return NewAppError(ErrTypeQuantity, "no item count found in line", nil).
		WithContext("row", []string(row))
}

// NewDateFormatError reports an order-date token that starts with the ETA
// prefix but lacks the trailing yymmdd block.
func NewDateFormatError(token string) *AppError {
	return NewAppError(ErrTypeDate, "order date does not match ETA convention", nil).
		WithContext("token", token)
}

// NewNumericParseError reports a cost or VAT cell that is not a number.
func NewNumericParseError(cell string, cause error) *AppError {
	return NewAppError(ErrTypeNumeric, "cell is not numeric", cause).
		WithContext("cell", cell)
}

// NewExtractionError reports a document that could not be rendered into
// tables at all.
func NewExtractionError(path string, cause error) *AppError {
	return NewAppError(ErrTypeExtraction, "table extraction failed", cause).
		WithContext("path", path)
}

// NewStorageError creates a persistence-related error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration-related error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// isType reports whether err is or wraps an AppError of the given type.
func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsQuantityNotFound reports whether err is a quantity heuristic failure.
func IsQuantityNotFound(err error) bool { return isType(err, ErrTypeQuantity) }

// IsDateFormat reports whether err is an order-date format failure.
func IsDateFormat(err error) bool { return isType(err, ErrTypeDate) }

// IsNumericParse reports whether err is a numeric cell conversion failure.
func IsNumericParse(err error) bool { return isType(err, ErrTypeNumeric) }
