package models

const (
	CollectionSettings = "settings"
	SettingsDocumentID = "site"
)

// SiteSettings is the merge-written singleton holding site-wide branding.
type SiteSettings struct {
	LogoURL string `json:"logoUrl,omitempty"`
}
