// Package imagehost forwards admin image uploads to the service that serves them publicly.
package imagehost

import (
	"context"
	"errors"
	"io"
)

// ErrRejected is returned when the host answered but refused the image.
var ErrRejected = errors.New("image rejected by host")

// Image is an upload in flight.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Uploaded describes where the host put the image.
type Uploaded struct {
	SecureURL string
	PublicID  string
	Bytes     int64
}

// Host stores an image and returns its public URL.
type Host interface {
	Upload(ctx context.Context, img Image) (*Uploaded, error)
}
