package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/imagehost"
	"github.com/ec-club-bing/website/internal/models"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

// UploadRequest is one image coming from an admin form. Field names the form input the URL is meant for.
type UploadRequest struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadService forwards images to the image host. Nothing is written to the document store; the
// caller places the returned URL into its form.
type UploadService struct {
	host     imagehost.Host
	metrics  *MetricsService
	logger   *zap.Logger
	maxBytes int64
	timeout  time.Duration
}

func NewUploadService(host imagehost.Host, metrics *MetricsService, logger *zap.Logger, maxBytes int64, timeout time.Duration) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &UploadService{host: host, metrics: metrics, logger: logger, maxBytes: maxBytes, timeout: timeout}
}

// Upload validates the image and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*models.UploadResult, error) {
	if req.Body == nil || req.Size == 0 {
		return nil, fileError("Please choose an image to upload.")
	}
	if req.Size > s.maxBytes {
		return nil, fileError("Image is too large.")
	}
	if req.ContentType != "" && !strings.HasPrefix(req.ContentType, "image/") {
		return nil, fileError("Only image files can be uploaded.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	uploaded, err := s.host.Upload(ctx, imagehost.Image{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Body:        io.LimitReader(req.Body, s.maxBytes),
	})
	s.metrics.RecordUpload(err == nil)
	if err != nil {
		s.logger.Error("image upload failed",
			zap.String("field", req.Field),
			zap.String("filename", req.Filename),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrUploadFailed.Code, appErrors.ErrUploadFailed.Status, appErrors.ErrUploadFailed.Message)
	}

	s.logger.Info("image uploaded", zap.String("field", req.Field), zap.String("url", uploaded.SecureURL))
	return &models.UploadResult{
		Field:     req.Field,
		SecureURL: uploaded.SecureURL,
		PublicID:  uploaded.PublicID,
		Bytes:     uploaded.Bytes,
	}, nil
}

func fileError(msg string) error {
	return appErrors.Validation("invalid upload", []appErrors.FieldError{{Field: "file", Message: msg}})
}
