package models

// UploadResult is returned to the admin form after an image reached the image host.
type UploadResult struct {
	Field     string `json:"field,omitempty"`
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}
