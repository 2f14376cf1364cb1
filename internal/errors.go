package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInvalidState ErrorType = "INVALID_STATE"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeCollaborator ErrorType = "COLLABORATOR_UNAVAILABLE"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidScore     ErrorCode = "INVALID_SCORE"
	ErrCodeInvalidBenchmark ErrorCode = "INVALID_BENCHMARK"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeSkillNotFound      ErrorCode = "SKILL_NOT_FOUND"
	ErrCodeBenchmarkNotFound  ErrorCode = "BENCHMARK_NOT_FOUND"
	ErrCodeAssessmentNotFound ErrorCode = "ASSESSMENT_NOT_FOUND"
	ErrCodeDisputeNotFound    ErrorCode = "DISPUTE_NOT_FOUND"
	ErrCodeCycleNotFound      ErrorCode = "CYCLE_NOT_FOUND"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeNeedNotFound       ErrorCode = "TRAINING_NEED_NOT_FOUND"

	ErrCodeEmptyDisputedSkills ErrorCode = "EMPTY_DISPUTED_SKILLS"
	ErrCodeSkillNotAssessed    ErrorCode = "SKILL_NOT_ASSESSED"
	ErrCodeMissingNewScore     ErrorCode = "MISSING_NEW_SCORE"
	ErrCodeMissingReason       ErrorCode = "MISSING_REASON"

	ErrCodeDisputeNotOpen    ErrorCode = "DISPUTE_NOT_OPEN"
	ErrCodeAssessmentLocked  ErrorCode = "ASSESSMENT_LOCKED"
	ErrCodeCycleOverlap      ErrorCode = "CYCLE_OVERLAP"
	ErrCodeSessionFull       ErrorCode = "SESSION_FULL"
	ErrCodeSessionNotOpen    ErrorCode = "SESSION_NOT_OPEN"
	ErrCodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUnauthorizedRole  ErrorCode = "UNAUTHORIZED_ROLE"
	ErrCodeCollaboratorDown  ErrorCode = "COLLABORATOR_UNAVAILABLE"
	ErrCodeInvalidResolution ErrorCode = "INVALID_RESOLUTION_ACTION"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewInvalidStateError signals a transition attempted from a terminal or
// wrong state. Mapped to 409 so callers can distinguish it from validation.
func NewInvalidStateError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewCollaboratorError wraps a persistence or identity lookup failure.
func NewCollaboratorError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeCollaborator,
		Code:       ErrCodeCollaboratorDown,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound = NewNotFoundError("No provisioned account found. Please contact your administrator.", ErrCodeUserNotFound)
	ErrUserInactive = NewForbiddenError("User account is inactive", ErrCodeUserInactive)

	ErrSkillNotFound      = NewNotFoundError("Skill not found", ErrCodeSkillNotFound)
	ErrBenchmarkNotFound  = NewNotFoundError("No effective benchmark for skill", ErrCodeBenchmarkNotFound)
	ErrAssessmentNotFound = NewNotFoundError("Assessment not found", ErrCodeAssessmentNotFound)
	ErrDisputeNotFound    = NewNotFoundError("Dispute not found", ErrCodeDisputeNotFound)
	ErrCycleNotFound      = NewNotFoundError("Assessment cycle not found", ErrCodeCycleNotFound)
	ErrSessionNotFound    = NewNotFoundError("Training session not found", ErrCodeSessionNotFound)

	ErrTrainingNeedNotFound = NewNotFoundError("Training need not found", ErrCodeNeedNotFound)

	ErrDisputeNotOpen   = NewInvalidStateError("dispute is not open for resolution", ErrCodeDisputeNotOpen)
	ErrAssessmentLocked = NewInvalidStateError("assessment is locked and can only change through dispute resolution", ErrCodeAssessmentLocked)
	ErrSessionFull      = NewInvalidStateError("training session is at capacity", ErrCodeSessionFull)
	ErrSessionNotOpen   = NewInvalidStateError("training session is not open for assignment", ErrCodeSessionNotOpen)

	ErrInvalidToken = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
