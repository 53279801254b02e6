package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeAlreadyExists

	// Weather client errors - one per way a single upstream call can fail
	ErrorTypeInvalidRequest
	ErrorTypeNetwork
	ErrorTypeInvalidResponse
	ErrorTypeNoData
	ErrorTypeDecoding

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypePersistence
	ErrorTypeExternalAPI
	ErrorTypeEmail

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeAlreadyExists:
		return "ALREADY_EXISTS_ERROR"
	case ErrorTypeInvalidRequest:
		return "INVALID_REQUEST_ERROR"
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeInvalidResponse:
		return "INVALID_RESPONSE_ERROR"
	case ErrorTypeNoData:
		return "NO_DATA_ERROR"
	case ErrorTypeDecoding:
		return "DECODING_ERROR"
	case ErrorTypePersistence:
		return "PERSISTENCE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeEmail:
		return "EMAIL_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// IsWeatherFetch reports whether the type belongs to the weather client failure family.
func (e ErrorType) IsWeatherFetch() bool {
	switch e {
	case ErrorTypeInvalidRequest, ErrorTypeNetwork, ErrorTypeInvalidResponse, ErrorTypeNoData, ErrorTypeDecoding:
		return true
	default:
		return false
	}
}

// Short aliases used across adapters and tests
const (
	ValidationError      = ErrorTypeValidation
	NotFoundError        = ErrorTypeNotFound
	AlreadyExistsError   = ErrorTypeAlreadyExists
	InvalidRequestError  = ErrorTypeInvalidRequest
	NetworkError         = ErrorTypeNetwork
	InvalidResponseError = ErrorTypeInvalidResponse
	NoDataError          = ErrorTypeNoData
	DecodingError        = ErrorTypeDecoding
	PersistenceError     = ErrorTypePersistence
	ExternalAPIError     = ErrorTypeExternalAPI
	EmailError           = ErrorTypeEmail
	ConfigurationError   = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewAlreadyExistsError(message string) *AppError {
	return New(AlreadyExistsError, message)
}

// Weather Client Error Constructors
func NewInvalidRequestError(message string, cause error) *AppError {
	return Wrap(InvalidRequestError, message, cause)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(NetworkError, message, cause)
}

func NewInvalidResponseError(message string) *AppError {
	return New(InvalidResponseError, message)
}

func NewNoDataError(message string) *AppError {
	return New(NoDataError, message)
}

func NewDecodingError(message string, cause error) *AppError {
	return Wrap(DecodingError, message, cause)
}

// Infrastructure Error Constructors
func NewPersistenceError(message string, cause error) *AppError {
	return Wrap(PersistenceError, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewEmailError(message string, cause error) *AppError {
	return Wrap(EmailError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsAlreadyExistsError(err error) bool {
	return TypeOf(err) == AlreadyExistsError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsPersistenceError(err error) bool {
	return TypeOf(err) == PersistenceError
}

func IsEmailError(err error) bool {
	return TypeOf(err) == EmailError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}

// IsWeatherFetchError reports whether err came from a failed weather client call.
func IsWeatherFetchError(err error) bool {
	return TypeOf(err).IsWeatherFetch()
}
