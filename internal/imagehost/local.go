package imagehost

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ec-club-bing/website/pkg/storage"
)

// Local keeps uploads on disk and serves them from the media base URL.
type Local struct {
	storage *storage.LocalStorage
}

func NewLocal(s *storage.LocalStorage) *Local {
	return &Local{storage: s}
}

// Upload stores img under a fresh name that keeps the original extension.
func (l *Local) Upload(ctx context.Context, img Image) (*Uploaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := uuid.NewString() + extension(img)
	n, err := l.storage.SaveStream(name, img.Body)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	return &Uploaded{SecureURL: l.storage.URL(name), PublicID: strings.TrimSuffix(name, filepath.Ext(name)), Bytes: n}, nil
}

func extension(img Image) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif":
		return ext
	}
	if exts, err := mime.ExtensionsByType(img.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
