package dto

import "strings"

// ArticleForm is the admin payload for creating or editing an article.
type ArticleForm struct {
	Title       string `json:"title" validate:"notblank,min=5"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Paragraph   string `json:"paragraph" validate:"min=10"`
	LinkedInURL string `json:"linkedinUrl" validate:"url"`
	ImageURL    string `json:"imageUrl" validate:"url"`
	ImageHint   string `json:"imageHint" validate:"omitempty,max=80"`
}

func (ArticleForm) FieldMessages() map[string]string {
	return map[string]string{
		"title":       "Title must be at least 5 characters.",
		"date":        "A date is required.",
		"paragraph":   "Paragraph must be at least 10 characters.",
		"linkedinUrl": "Please enter a valid LinkedIn URL.",
		"imageUrl":    "An image URL is required.",
		"imageHint":   "Image hint must be at most 80 characters.",
	}
}

// Normalize trims surrounding whitespace from every field.
func (f *ArticleForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Paragraph = strings.TrimSpace(f.Paragraph)
	f.LinkedInURL = strings.TrimSpace(f.LinkedInURL)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.ImageHint = strings.TrimSpace(f.ImageHint)
}

// EventForm is the admin payload for creating or editing an event.
type EventForm struct {
	Title       string `json:"title" validate:"notblank,min=5"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,max=40"`
	Location    string `json:"location" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"min=10"`
	Link        string `json:"link" validate:"omitempty,url"`
}

func (EventForm) FieldMessages() map[string]string {
	return map[string]string{
		"title":       "Title must be at least 5 characters.",
		"date":        "An event date is required.",
		"description": "Description must be at least 10 characters.",
		"link":        "Please enter a valid URL or leave it blank.",
	}
}

// Normalize trims surrounding whitespace from every field.
func (f *EventForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Location = strings.TrimSpace(f.Location)
	f.Description = strings.TrimSpace(f.Description)
	f.Link = strings.TrimSpace(f.Link)
}

// HomepageForm replaces the homepage singleton.
type HomepageForm struct {
	HeroImageURL  string `json:"heroImageUrl" validate:"url"`
	AboutImageURL string `json:"aboutImageUrl" validate:"url"`
}

func (HomepageForm) FieldMessages() map[string]string {
	return map[string]string{
		"heroImageUrl":  "A valid hero image URL is required.",
		"aboutImageUrl": "A valid about image URL is required.",
	}
}

// SettingsForm merges into the settings singleton. A nil LogoURL leaves the stored logo untouched;
// an empty string clears it.
type SettingsForm struct {
	LogoURL *string `json:"logoUrl" validate:"omitempty,eq=|url"`
}

func (SettingsForm) FieldMessages() map[string]string {
	return map[string]string{"logoUrl": "A valid logo URL is required."}
}

// ContactForm is submitted from the public contact page.
type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"min=2"`
	Email   string `json:"email" form:"email" validate:"email"`
	Subject string `json:"subject" form:"subject" validate:"min=5"`
	Message string `json:"message" form:"message" validate:"min=10"`
}

func (ContactForm) FieldMessages() map[string]string {
	return map[string]string{
		"name":    "Name must be at least 2 characters.",
		"email":   "Please enter a valid email address.",
		"subject": "Subject must be at least 5 characters.",
		"message": "Message must be at least 10 characters.",
	}
}

// Normalize trims surrounding whitespace from every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}
