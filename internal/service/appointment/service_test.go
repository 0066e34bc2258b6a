package appointment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/service/appointment"
	"github.com/healthmaster/healthmaster-go/internal/service/session"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/internal/store/appwritetest"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func newService(t *testing.T, signIn bool) (*appointment.Service, *model.UserProfile) {
	t.Helper()
	srv := appwritetest.New()
	t.Cleanup(srv.Close)
	client := appwrite.NewClient(srv.StoreConfig())
	manager := session.NewManager(client, srv.StoreConfig(), nil)
	svc := appointment.NewService(manager, client, srv.StoreConfig(), nil)

	if !signIn {
		return svc, nil
	}
	profile, err := manager.CreateAccount(context.Background(), "pat@example.com", "Secret123!", "Pat")
	require.NoError(t, err)
	return svc, profile
}

func validRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		DoctorID:             "doc-1",
		DoctorName:           "Dr. Chen",
		DoctorSpecialization: "Cardiology",
		Date:                 "2026-09-10T09:30:00Z",
		Reason:               "follow-up",
		Severity:             model.SeverityModerate,
	}
}

func TestCreateSetsOwnerAndDefaults(t *testing.T) {
	svc, profile := newService(t, true)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, profile.ID, created.UserID)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestCreateNormalizesDates(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	// Bare picker dates become UTC instants.
	req := validRequest()
	req.Date = "2026-09-10"
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10T00:00:00Z", created.Date)

	// Offset instants are forced to UTC so stored dates order as
	// instants.
	req = validRequest()
	req.Date = "2026-09-10T09:30:00+05:00"
	created, err = svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10T04:30:00Z", created.Date)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.CreateAppointmentRequest)
	}{
		{"missing doctor", func(r *model.CreateAppointmentRequest) { r.DoctorID = "" }},
		{"missing date", func(r *model.CreateAppointmentRequest) { r.Date = "" }},
		{"unparseable date", func(r *model.CreateAppointmentRequest) { r.Date = "10/09/2026" }},
		{"unknown severity", func(r *model.CreateAppointmentRequest) { r.Severity = "Terrible" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Create(ctx, req)
			assert.True(t, apperror.IsKind(err, apperror.Validation))
		})
	}
}

func TestCreateRequiresUser(t *testing.T) {
	svc, _ := newService(t, false)

	_, err := svc.Create(context.Background(), validRequest())
	assert.True(t, apperror.IsKind(err, apperror.Unauthenticated))

	_, err = svc.List(context.Background())
	assert.True(t, apperror.IsKind(err, apperror.Unauthenticated))
}

func TestListOrdersByDateDescending(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	for _, date := range []string{
		"2026-01-01T10:00:00Z",
		"2026-03-01T10:00:00Z",
		"2026-02-01T10:00:00Z",
	} {
		req := validRequest()
		req.Date = date
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-03-01T10:00:00Z", got[0].Date)
	assert.Equal(t, "2026-02-01T10:00:00Z", got[1].Date)
	assert.Equal(t, "2026-01-01T10:00:00Z", got[2].Date)
}

func TestListEmpty(t *testing.T) {
	svc, _ := newService(t, true)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	// Terminal states never change again.
	_, err = svc.Cancel(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
	_, err = svc.Complete(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.Validation))

	other, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	cancelled, err := svc.Cancel(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	_, err = svc.Complete(ctx, other.ID)
	assert.True(t, apperror.IsKind(err, apperror.Validation))
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	err = svc.Delete(ctx, "missing")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}
