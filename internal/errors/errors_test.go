package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("finding order: %w", NewNotFoundError("order not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order not found", notFoundErr.Message)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "email", Message: "email is required"},
		{Field: "name", Message: "name is required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestConflictError_IsConflictError(t *testing.T) {
	err := NewConflictError("email already registered")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "email already registered", ce.Error())

	_, ok = IsConflictError(NewNotFoundError("x"))
	assert.False(t, ok)
}

func TestAuthenticationError_IsAuthenticationError(t *testing.T) {
	err := NewAuthenticationError("invalid credentials")

	ae, ok := IsAuthenticationError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid credentials", ae.Message)
}

func TestInvalidTransitionError_KeepsFromStatus(t *testing.T) {
	err := NewInvalidTransitionError("already delivered", "delivered")

	ite, ok := IsInvalidTransitionError(fmt.Errorf("advance: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "already delivered", ite.Error())
	assert.Equal(t, "delivered", ite.From)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsInternalError_Wrapped(t *testing.T) {
	err := fmt.Errorf("advance: %w", NewInternalError("committing transition", errors.New("disk I/O error")))

	ie, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, "committing transition", ie.Message)

	_, ok = IsInternalError(errors.New("plain"))
	assert.False(t, ok)
}
