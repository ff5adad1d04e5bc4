package models

const (
	CollectionHomepage = "homepage"
	HomepageDocumentID = "main"

	DefaultHeroImageURL  = "https://picsum.photos/1920/1080"
	DefaultAboutImageURL = "https://picsum.photos/800/600"
)

// HomepageContent is the singleton holding the hero and about images.
type HomepageContent struct {
	HeroImageURL  string `json:"heroImageUrl"`
	AboutImageURL string `json:"aboutImageUrl"`
}

// DefaultHomepageContent is written on first read when the singleton is absent.
func DefaultHomepageContent() HomepageContent {
	return HomepageContent{HeroImageURL: DefaultHeroImageURL, AboutImageURL: DefaultAboutImageURL}
}

func (h HomepageContent) Fields() map[string]interface{} {
	return map[string]interface{}{
		"heroImageUrl":  h.HeroImageURL,
		"aboutImageUrl": h.AboutImageURL,
	}
}
