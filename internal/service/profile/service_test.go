package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/service/profile"
	"github.com/healthmaster/healthmaster-go/internal/service/session"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/internal/store/appwritetest"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func newService(t *testing.T, signIn bool) *profile.Service {
	t.Helper()
	srv := appwritetest.New()
	t.Cleanup(srv.Close)
	client := appwrite.NewClient(srv.StoreConfig())
	manager := session.NewManager(client, srv.StoreConfig(), nil)
	svc := profile.NewService(manager, client, srv.StoreConfig(), nil)

	if signIn {
		_, err := manager.CreateAccount(context.Background(), "pat@example.com", "Secret123!", "Pat")
		require.NoError(t, err)
	}
	return svc
}

func TestCreateCopiesIdentity(t *testing.T) {
	svc := newService(t, true)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Pat", created.Name)
	assert.Equal(t, "pat@example.com", created.Email)
	assert.Equal(t, "default_avatar.png", created.Avatar)
	// Health fields start empty until the user fills them in.
	assert.Empty(t, created.BloodType)
	assert.Empty(t, created.Allergies)
}

func TestCreateRequiresUser(t *testing.T) {
	svc := newService(t, false)

	_, err := svc.Create(context.Background())
	assert.True(t, apperror.IsKind(err, apperror.Unauthenticated))
}

func TestUpdatePartial(t *testing.T) {
	svc := newService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	blood := "O+"
	height := "172 cm"
	updated, err := svc.Update(ctx, created.ID, &model.UpdateHealthProfileRequest{
		BloodType: &blood,
		Height:    &height,
	})
	require.NoError(t, err)
	assert.Equal(t, "O+", updated.BloodType)
	assert.Equal(t, "172 cm", updated.Height)
	assert.Equal(t, created.Name, updated.Name)

	fetched, err := svc.Fetch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "O+", fetched.BloodType)
}

func TestFetchMissing(t *testing.T) {
	svc := newService(t, true)

	_, err := svc.Fetch(context.Background(), "missing")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}
