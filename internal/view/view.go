// Package view holds the server-rendered public pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ec-club-bing/website/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Tagline is the hero line under the club name.
const Tagline = "Uniting Binghamton's brightest minds to foster innovation and build the future of student-led enterprise."

// Site carries the chrome shared by every page.
type Site struct {
	Name         string
	Tagline      string
	ContactEmail string
	LogoURL      string
	Year         int
}

// Page is the data handed to every template.
type Page struct {
	Title   string
	Path    string
	Site    Site
	Content interface{}
}

// ContactPage backs the contact form, including after a submission.
type ContactPage struct {
	Name    string
	Email   string
	Subject string
	Message string
	Errors  map[string]string
	Sent    bool
	Failed  bool
}

// AboutPage backs the about page.
type AboutPage struct {
	Homepage models.HomepageContent
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"longDate": LongDate,
		"day":      func(date string) string { return datePart(date, "02") },
		"month":    func(date string) string { return datePart(date, "Jan") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// LongDate formats a YYYY-MM-DD day as "September 25, 2024". Unparseable input is returned as is.
func LongDate(date string) string {
	return datePart(date, "January 2, 2006")
}

func datePart(date, layout string) string {
	t, err := time.Parse(models.EventDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// renderMarkdown turns stored paragraphs into HTML. Raw HTML in the source is not passed through.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String()) //nolint:gosec
}
