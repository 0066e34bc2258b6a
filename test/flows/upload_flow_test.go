package flows

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/model"
)

func TestUploadedImageAttachesToMedication(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUp(t, "pat@example.com", "Pat")

	url, err := e.uploads.Image(ctx, strings.NewReader("pill-photo"))
	require.NoError(t, err)

	med, err := e.medications.Create(ctx, &model.CreateMedicationRequest{
		Name:      "Aspirin",
		Dosage:    1,
		Quantity:  "20 pills",
		StartDate: "2026-08-01",
		EndDate:   "2026-09-01",
		TimeOfDay: "morning",
		Style:     model.MedicationStyleSolid,
		ImageURL:  url,
	})
	require.NoError(t, err)
	assert.Equal(t, url, med.ImageURL)

	resp, err := http.Get(med.ImageURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pill-photo", string(body))
}

func TestReminderSoundURLResolves(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUp(t, "pat@example.com", "Pat")

	// Provision the sound the way an operator would, then resolve it.
	cfg := e.srv.StoreConfig()
	sound, err := e.client.CreateFile(ctx, cfg.Buckets.Sounds, "chime", "chime.mp3", strings.NewReader("mp3-bytes"))
	require.NoError(t, err)

	url := e.reminders.SoundFileURL(sound.ID)
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(body))
}
