package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "City name cannot be empty.")
			},
			expected: "VALIDATION_ERROR: City name cannot be empty.",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("disk full")
				return Wrap(PersistenceError, "failed to save location", cause)
			},
			expected: "PERSISTENCE_ERROR: failed to save location (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewNetworkError("Network error occurred", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, NewNoDataError("empty body").Unwrap())
}

func TestTypeOf_WrappedChain(t *testing.T) {
	inner := NewDecodingError("Failed to decode the response", fmt.Errorf("unexpected EOF"))
	outer := fmt.Errorf("get weather for Paris: %w", inner)

	assert.Equal(t, DecodingError, TypeOf(outer))
	assert.True(t, IsWeatherFetchError(outer))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(nil))
}

func TestErrorType_IsWeatherFetch(t *testing.T) {
	fetchTypes := []ErrorType{InvalidRequestError, NetworkError, InvalidResponseError, NoDataError, DecodingError}
	for _, et := range fetchTypes {
		assert.True(t, et.IsWeatherFetch(), et.String())
	}

	otherTypes := []ErrorType{ValidationError, NotFoundError, PersistenceError, ExternalAPIError, ConfigurationError}
	for _, et := range otherTypes {
		assert.False(t, et.IsWeatherFetch(), et.String())
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("bad")))
	assert.True(t, IsNotFoundError(NewNotFoundError("missing")))
	assert.True(t, IsAlreadyExistsError(NewAlreadyExistsError("dup")))
	assert.True(t, IsPersistenceError(NewPersistenceError("commit", nil)))
	assert.True(t, IsEmailError(NewEmailError("smtp", nil)))
	assert.True(t, IsConfigurationError(NewConfigurationError("cfg", nil)))
	assert.False(t, IsValidationError(NewNotFoundError("missing")))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "INVALID_RESPONSE_ERROR", InvalidResponseError.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(999).String())
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("location not found"))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "location not found", appErr.Message)

	_, ok = AsAppError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
