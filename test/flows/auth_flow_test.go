package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/service/session"
)

func TestSignUpSignOutSignIn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUp(t, "pat@example.com", "Pat")

	current, err := e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Pat", current.Username)

	require.NoError(t, e.sessions.SignOut(ctx))
	current, err = e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = e.sessions.SignIn(ctx, "pat@example.com", "Secret123!")
	require.NoError(t, err)
	current, err = e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "pat@example.com", current.Email)
}

func TestWrongPasswordLeavesCallerSignedOut(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUp(t, "pat@example.com", "Pat")
	require.NoError(t, e.sessions.SignOut(ctx))

	_, err := e.sessions.SignIn(ctx, "pat@example.com", "WrongPassword")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)

	current, err := e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestProfileProvisioningFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUp(t, "pat@example.com", "Pat")

	hp, err := e.profiles.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pat", hp.Name)

	current, err := e.sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, hp.UserID, current.ID)
}
