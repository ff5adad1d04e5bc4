package imagehost

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary performs unsigned uploads against a named cloud using an upload preset.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	preset string
}

// NewCloudinary builds the client. An empty uploadPrefix keeps the SDK's default API host.
func NewCloudinary(uploadPrefix, cloudName, preset string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	if uploadPrefix != "" {
		cld.Upload.Config.API.UploadPrefix = strings.TrimRight(uploadPrefix, "/")
	}
	return &Cloudinary{cld: cld, preset: preset}, nil
}

// Upload streams img to the cloud's image upload endpoint.
func (c *Cloudinary) Upload(ctx context.Context, img Image) (*Uploaded, error) {
	res, err := c.cld.Upload.UnsignedUpload(ctx, img.Body, c.preset, uploader.UploadParams{})
	if err != nil {
		return nil, fmt.Errorf("upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrRejected, res.Error.Message)
	}
	if res.SecureURL == "" {
		return nil, fmt.Errorf("%w: no secure url in response", ErrRejected)
	}
	return &Uploaded{SecureURL: res.SecureURL, PublicID: res.PublicID, Bytes: int64(res.Bytes)}, nil
}
