package upload_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmaster/healthmaster-go/internal/service/upload"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/internal/store/appwritetest"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

func newService(t *testing.T) *upload.Service {
	t.Helper()
	srv := appwritetest.New()
	t.Cleanup(srv.Close)
	client := appwrite.NewClient(srv.StoreConfig())
	ctx := context.Background()
	_, err := client.CreateAccount(ctx, "acc-1", "pat@example.com", "Secret123!", "Pat")
	require.NoError(t, err)
	_, err = client.CreateSession(ctx, "pat@example.com", "Secret123!")
	require.NoError(t, err)
	return upload.NewService(client, srv.StoreConfig(), nil)
}

func fetch(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestImageReturnsResolvableURL(t *testing.T) {
	svc := newService(t)

	url, err := svc.Image(context.Background(), strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", fetch(t, url))
}

func TestImageFile(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("from-disk"), 0o600))

	url, err := svc.ImageFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "from-disk", fetch(t, url))

	// A missing local file fails with the upload kind.
	_, err = svc.ImageFile(ctx, filepath.Join(t.TempDir(), "missing.jpg"))
	assert.True(t, apperror.IsKind(err, apperror.Upload))
}

func TestImagesBatch(t *testing.T) {
	svc := newService(t)

	urls, err := svc.Images(context.Background(), []io.Reader{
		strings.NewReader("one"),
		strings.NewReader("two"),
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "one", fetch(t, urls["avatar1"]))
	assert.Equal(t, "two", fetch(t, urls["avatar2"]))
}

func TestAvatarUsesAvatarsBucket(t *testing.T) {
	svc := newService(t)

	url, err := svc.Avatar(context.Background(), strings.NewReader("pic"))
	require.NoError(t, err)
	assert.Contains(t, url, "/storage/buckets/"+appwritetest.AvatarsBucket+"/")
	assert.Equal(t, "pic", fetch(t, url))
}
