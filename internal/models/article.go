package models

// CollectionArticles is the document collection holding club articles.
const CollectionArticles = "articles"

// Article is a news post shown on the home and articles pages.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Paragraph   string `json:"paragraph"`
	LinkedInURL string `json:"linkedinUrl"`
	ImageURL    string `json:"imageUrl"`
	ImageHint   string `json:"imageHint,omitempty"`
}

// Fields returns the stored representation without the id.
func (a Article) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"title":       a.Title,
		"date":        a.Date,
		"paragraph":   a.Paragraph,
		"linkedinUrl": a.LinkedInURL,
		"imageUrl":    a.ImageURL,
	}
	if a.ImageHint != "" {
		fields["imageHint"] = a.ImageHint
	}
	return fields
}
