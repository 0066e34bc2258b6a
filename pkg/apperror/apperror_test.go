package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(Validation, "appointments.create", "appointment", "invalid appointment", errors.New("date is required"))
	assert.Equal(t, "appointments.create: invalid appointment: date is required", err.Error())

	bare := Newf(RateLimited, "", "session", "")
	assert.Equal(t, "rate_limited", bare.Error())
}

func TestKindMatching(t *testing.T) {
	err := Newf(InvalidCredentials, "session.create", "session", "invalid credentials")

	assert.True(t, IsKind(err, InvalidCredentials))
	assert.False(t, IsKind(err, RateLimited))
	assert.Equal(t, InvalidCredentials, KindOf(err))
}

func TestKindMatchingThroughWrapping(t *testing.T) {
	inner := Newf(Unauthenticated, "account.get", "account", "missing session")
	wrapped := fmt.Errorf("resolving caller: %w", inner)

	assert.True(t, IsKind(wrapped, Unauthenticated))
	assert.Equal(t, Unauthenticated, KindOf(wrapped))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	sentinel := Newf(ConflictingSession, "session", "session", "a session is already active")
	got := New(ConflictingSession, "session.create", "session", "session is active, delete it first", nil)

	assert.True(t, errors.Is(got, sentinel))
	assert.False(t, errors.Is(got, Newf(RateLimited, "", "", "")))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, UnknownRemote, KindOf(errors.New("boom")))
	assert.False(t, IsKind(errors.New("boom"), Validation))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := New(UnknownRemote, "document.list", "appointments", "request failed", cause)
	assert.ErrorIs(t, err, cause)
}
