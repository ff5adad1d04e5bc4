package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/imagehost"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

type stubHost struct {
	got  []byte
	err  error
	wait bool
}

func (h *stubHost) Upload(ctx context.Context, img imagehost.Image) (*imagehost.Uploaded, error) {
	if h.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if h.err != nil {
		return nil, h.err
	}
	h.got, _ = io.ReadAll(img.Body)
	return &imagehost.Uploaded{SecureURL: "https://res.cloudinary.com/demo/" + img.Filename, PublicID: "demo", Bytes: int64(len(h.got))}, nil
}

func TestUploadServiceReturnsSecureURL(t *testing.T) {
	host := &stubHost{}
	metrics := NewMetricsService()
	svc := NewUploadService(host, metrics, nil, 1024, time.Second)

	out, err := svc.Upload(context.Background(), UploadRequest{
		Field: "heroImageUrl", Filename: "hero.png", ContentType: "image/png", Size: 5, Body: strings.NewReader("image"),
	})
	require.NoError(t, err)
	assert.Equal(t, "heroImageUrl", out.Field)
	assert.Equal(t, "https://res.cloudinary.com/demo/hero.png", out.SecureURL)
	assert.Equal(t, "image", string(host.got))
	assert.EqualValues(t, 1, metrics.Snapshot().UploadsTotal)
}

func TestUploadServiceRejectsBadInput(t *testing.T) {
	svc := NewUploadService(&stubHost{}, nil, nil, 4, time.Second)

	cases := map[string]UploadRequest{
		"empty":     {Filename: "a.png", ContentType: "image/png"},
		"too large": {Filename: "a.png", ContentType: "image/png", Size: 5, Body: strings.NewReader("12345")},
		"not image": {Filename: "a.pdf", ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), req)
			appErr := requireAppError(t, err, appErrors.ErrValidation)
			_, ok := appErr.Field("file")
			assert.True(t, ok)
		})
	}
}

func TestUploadServiceHostFailure(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewUploadService(&stubHost{err: errors.New("preset missing")}, metrics, nil, 1024, time.Second)

	_, err := svc.Upload(context.Background(), UploadRequest{Filename: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x")})
	appErr := requireAppError(t, err, appErrors.ErrUploadFailed)
	assert.Equal(t, "Failed to upload image. Please try again.", appErr.Message)
	assert.EqualValues(t, 1, metrics.Snapshot().UploadFailures)
}

func TestUploadServiceTimeout(t *testing.T) {
	svc := NewUploadService(&stubHost{wait: true}, nil, nil, 1024, 10*time.Millisecond)

	_, err := svc.Upload(context.Background(), UploadRequest{Filename: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x")})
	requireAppError(t, err, appErrors.ErrUploadFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
