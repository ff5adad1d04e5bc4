package imagehost

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/pkg/storage"
)

func TestCloudinaryUploadSendsPresetAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ecbing", r.FormValue("upload_preset"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "png-bytes", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/hero.png","public_id":"hero","bytes":9}`))
	}))
	defer srv.Close()

	host, err := NewCloudinary(srv.URL, "demo", "ecbing")
	require.NoError(t, err)
	out, err := host.Upload(context.Background(), Image{Filename: "hero.png", ContentType: "image/png", Body: strings.NewReader("png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/hero.png", out.SecureURL)
	assert.Equal(t, "hero", out.PublicID)
	assert.EqualValues(t, 9, out.Bytes)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	host, err := NewCloudinary(srv.URL, "demo", "missing")
	require.NoError(t, err)
	_, err = host.Upload(context.Background(), Image{Filename: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Upload preset not found")
}

func TestCloudinaryUploadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	host, err := NewCloudinary(url, "demo", "ecbing")
	require.NoError(t, err)
	_, err = host.Upload(context.Background(), Image{Filename: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestLocalUploadKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "http://localhost:8080/media")
	require.NoError(t, err)

	host := NewLocal(store)
	out, err := host.Upload(context.Background(), Image{Filename: "Logo.PNG", ContentType: "image/png", Body: strings.NewReader("logo")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.SecureURL, "http://localhost:8080/media/"))
	assert.True(t, strings.HasSuffix(out.SecureURL, ".png"))
	assert.EqualValues(t, 4, out.Bytes)

	content, err := os.ReadFile(filepath.Join(dir, out.PublicID+".png"))
	require.NoError(t, err)
	assert.Equal(t, "logo", string(content))
}

func TestLocalUploadHonoursCancelledContext(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLocal(store).Upload(ctx, Image{Filename: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, context.Canceled)
}
