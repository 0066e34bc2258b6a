// Package flows exercises the services together against the in-memory
// store server, the way the application drives them: one store client
// holding one session, shared by every service.
package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/service/appointment"
	"github.com/healthmaster/healthmaster-go/internal/service/medication"
	"github.com/healthmaster/healthmaster-go/internal/service/profile"
	"github.com/healthmaster/healthmaster-go/internal/service/reminder"
	"github.com/healthmaster/healthmaster-go/internal/service/session"
	"github.com/healthmaster/healthmaster-go/internal/service/upload"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/internal/store/appwritetest"
)

type env struct {
	srv          *appwritetest.Server
	client       *appwrite.Client
	sessions     *session.Manager
	appointments *appointment.Service
	medications  *medication.Service
	reminders    *reminder.Service
	profiles     *profile.Service
	uploads      *upload.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := appwritetest.New()
	t.Cleanup(srv.Close)

	cfg := srv.StoreConfig()
	client := appwrite.NewClient(cfg)
	sessions := session.NewManager(client, cfg, nil)
	return &env{
		srv:          srv,
		client:       client,
		sessions:     sessions,
		appointments: appointment.NewService(sessions, client, cfg, nil),
		medications:  medication.NewService(sessions, client, cfg, nil),
		reminders:    reminder.NewService(sessions, client, cfg, nil),
		profiles:     profile.NewService(sessions, client, cfg, nil),
		uploads:      upload.NewService(client, cfg, nil),
	}
}

// signUp provisions an account and leaves its session active.
func (e *env) signUp(t *testing.T, email, username string) {
	t.Helper()
	_, err := e.sessions.CreateAccount(context.Background(), email, "Secret123!", username)
	require.NoError(t, err)
}

// switchTo signs the current user out and another in.
func (e *env) switchTo(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.sessions.SignOut(ctx))
	_, err := e.sessions.SignIn(ctx, email, "Secret123!")
	require.NoError(t, err)
}
