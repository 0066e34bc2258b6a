package medication_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/service/medication"
	"github.com/healthmaster/healthmaster-go/internal/service/session"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/internal/store/appwritetest"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func newService(t *testing.T) (*medication.Service, *model.UserProfile) {
	t.Helper()
	srv := appwritetest.New()
	t.Cleanup(srv.Close)
	client := appwrite.NewClient(srv.StoreConfig())
	manager := session.NewManager(client, srv.StoreConfig(), nil)
	svc := medication.NewService(manager, client, srv.StoreConfig(), nil)

	profile, err := manager.CreateAccount(context.Background(), "pat@example.com", "Secret123!", "Pat")
	require.NoError(t, err)
	return svc, profile
}

func validRequest() *model.CreateMedicationRequest {
	return &model.CreateMedicationRequest{
		Name:      "Metformin",
		Dosage:    2,
		Quantity:  "60 pills",
		StartDate: "2026-08-01",
		EndDate:   "2026-10-01",
		TimeOfDay: "morning",
		Style:     model.MedicationStyleCapsule,
	}
}

func TestCreateNormalizesDates(t *testing.T) {
	svc, profile := newService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, created.UserID)
	// Bare dates are stored as full instants.
	assert.Equal(t, "2026-08-01T00:00:00Z", created.StartDate)
	assert.Equal(t, "2026-10-01T00:00:00Z", created.EndDate)
	assert.Empty(t, created.Status, "new courses are active")
	assert.Equal(t, "60 pills", created.Quantity)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.CreateMedicationRequest)
	}{
		{"missing name", func(r *model.CreateMedicationRequest) { r.Name = "" }},
		{"zero dosage", func(r *model.CreateMedicationRequest) { r.Dosage = 0 }},
		{"unknown style", func(r *model.CreateMedicationRequest) { r.Style = "powder" }},
		{"bad start date", func(r *model.CreateMedicationRequest) { r.StartDate = "01/08/2026" }},
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

func TestListNewestFirst(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	names := []string{"Metformin", "Lisinopril", "Aspirin"}
	for _, name := range names {
		req := validRequest()
		req.Name = name
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Identical createdAt instants fall back to store insertion order;
	// either way every course must be present.
	var listed []string
	for _, med := range got {
		listed = append(listed, med.Name)
	}
	assert.ElementsMatch(t, names, listed)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	dosage := 3
	updated, err := svc.Update(ctx, created.ID, &model.UpdateMedicationRequest{Dosage: &dosage})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Dosage)
	assert.Equal(t, created.Name, updated.Name, "omitted fields stay untouched")
	assert.Equal(t, created.Quantity, updated.Quantity)
}

func TestCompleteThenDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicationStatusCompleted, completed.Status)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicationStatusCompleted, fetched.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
