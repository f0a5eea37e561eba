package domain

import (
	"errors"
	"fmt"
)

// ErrorCode tags every domain error so the transport layer can map it to a
// status without inspecting message text.
type ErrorCode string

const (
	CodeEntityNotFound      ErrorCode = "ENTITY_NOT_FOUND"
	CodeDuplicateEntity     ErrorCode = "DUPLICATE_ENTITY"
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorizedAccess  ErrorCode = "UNAUTHORIZED_ACCESS"
	CodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	CodeCalculation         ErrorCode = "CALCULATION_ERROR"
	CodeInterpretation      ErrorCode = "INTERPRETATION_ERROR"
	CodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
)

// Calculation stages carried by CALCULATION_ERROR.
const (
	StageNatalChart  = "natal_chart"
	StageSolarSet    = "solar_set"
	StageTransit     = "transit"
	StageSolarReturn = "solar_return"
	StageExport      = "export"
)

// Error is the base domain error: a human message plus a machine code.
// Specializations fill the optional fields for their variant.
type Error struct {
	Code    ErrorCode
	Message string

	EntityType string // ENTITY_NOT_FOUND, DUPLICATE_ENTITY
	EntityID   string // ENTITY_NOT_FOUND
	Field      string // DUPLICATE_ENTITY, VALIDATION_ERROR
	Value      string // DUPLICATE_ENTITY
	Stage      string // CALCULATION_ERROR
	Language   string // INTERPRETATION_ERROR, UNSUPPORTED_LANGUAGE

	cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Is lets callers match on a code-only template with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NewEntityNotFound(entityType, id string) *Error {
	return &Error{
		Code:       CodeEntityNotFound,
		Message:    fmt.Sprintf("%s with ID %s not found", entityType, id),
		EntityType: entityType,
		EntityID:   id,
	}
}

func NewDuplicateEntity(entityType, field, value string) *Error {
	return &Error{
		Code:       CodeDuplicateEntity,
		Message:    fmt.Sprintf("%s with %s=%q already exists", entityType, field, value),
		EntityType: entityType,
		Field:      field,
		Value:      value,
	}
}

func NewValidationError(message, field string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

func NewUnauthorizedAccess(reason string) *Error {
	if reason == "" {
		reason = "unauthorized access"
	}
	return &Error{Code: CodeUnauthorizedAccess, Message: reason}
}

// NewInvalidCredentials is deliberately generic: it covers unknown email,
// wrong password, inactive account, and malformed or wrong-type tokens so the
// caller cannot enumerate which half failed.
func NewInvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "invalid email or password"}
}

func NewCalculationError(message, stage string, cause error) *Error {
	return &Error{Code: CodeCalculation, Message: message, Stage: stage, cause: cause}
}

func NewInterpretationError(message, language string, cause error) *Error {
	return &Error{Code: CodeInterpretation, Message: message, Language: language, cause: cause}
}

func NewUnsupportedLanguage(language string) *Error {
	return &Error{
		Code:     CodeUnsupportedLanguage,
		Message:  fmt.Sprintf("unsupported language: %s", language),
		Language: language,
	}
}

// CodeOf extracts the domain error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool     { return CodeOf(err) == CodeEntityNotFound }
func IsDuplicate(err error) bool    { return CodeOf(err) == CodeDuplicateEntity }
func IsUnauthorized(err error) bool { return CodeOf(err) == CodeUnauthorizedAccess }
