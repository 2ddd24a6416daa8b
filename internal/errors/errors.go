package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrUnauthorized     = new(ErrCodeUnauthorized, "unauthorized")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// City tax calculation failures. None of them is retriable.
	ErrNoApplicableRule           = new(ErrCodeNoApplicableRule, "no tax rule covers the reference date")
	ErrAmbiguousRuleConfiguration = new(ErrCodeAmbiguousRuleConfiguration, "overlapping tax rule validity windows")
	ErrInvalidDateRange           = new(ErrCodeInvalidDateRange, "check-out must be after check-in")
	ErrUnknownGuestRole           = new(ErrCodeUnknownGuestRole, "unknown guest role")
	ErrInvalidRuleConfiguration   = new(ErrCodeInvalidRuleConfiguration, "invalid tax rule configuration")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrDatabase:                   http.StatusInternalServerError,
		ErrNotFound:                   http.StatusNotFound,
		ErrAlreadyExists:              http.StatusConflict,
		ErrValidation:                 http.StatusBadRequest,
		ErrInvalidOperation:           http.StatusBadRequest,
		ErrPermissionDenied:           http.StatusForbidden,
		ErrUnauthorized:               http.StatusUnauthorized,
		ErrSystem:                     http.StatusInternalServerError,
		ErrNoApplicableRule:           http.StatusUnprocessableEntity,
		ErrAmbiguousRuleConfiguration: http.StatusConflict,
		ErrInvalidDateRange:           http.StatusBadRequest,
		ErrUnknownGuestRole:           http.StatusBadRequest,
		ErrInvalidRuleConfiguration:   http.StatusUnprocessableEntity,
	}
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeDatabase         = "database_error"

	ErrCodeNoApplicableRule           = "no_applicable_rule"
	ErrCodeAmbiguousRuleConfiguration = "ambiguous_rule_configuration"
	ErrCodeInvalidDateRange           = "invalid_date_range"
	ErrCodeUnknownGuestRole           = "unknown_guest_role"
	ErrCodeInvalidRuleConfiguration   = "invalid_rule_configuration"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsCityTaxError reports whether err belongs to the city tax calculation taxonomy.
func IsCityTaxError(err error) bool {
	return errors.Is(err, ErrNoApplicableRule) ||
		errors.Is(err, ErrAmbiguousRuleConfiguration) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownGuestRole) ||
		errors.Is(err, ErrInvalidRuleConfiguration)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code of the sentinel err is marked with,
// or the system error code.
func Code(err error) string {
	for e := range statusCodeMap {
		if errors.Is(err, e) {
			return e.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}

// DisplayMessage returns the user facing message for err: the first hint
// attached with WithHint, falling back to the error text.
func DisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
