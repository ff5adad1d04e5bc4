package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/models"
)

func site() Site {
	return Site{Name: "Entrepreneur Connect", Tagline: "Build things.", ContactEmail: "ecclub@binghamton.edu", Year: 2024}
}

func render(t *testing.T, name string, page Page) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, page))
	return buf.String()
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "September 25, 2024", LongDate("2024-09-25"))
	assert.Equal(t, "soon", LongDate("soon"))
}

func TestHomeRendersSections(t *testing.T) {
	out := render(t, "home.html", Page{Path: "/", Site: site(), Content: models.HomeView{
		Homepage: models.DefaultHomepageContent(),
		Articles: models.NewSection([]models.Article{{
			Title: "Pitch Workshop", Date: "2024-03-01", Paragraph: "Three **key** takeaways",
			LinkedInURL: "https://www.linkedin.com/", ImageURL: "https://example.com/p.png",
		}}),
		Events: models.NewSection[models.Event](nil),
	}})

	assert.Contains(t, out, "<title>Entrepreneur Connect</title>")
	assert.Contains(t, out, "March 1, 2024")
	assert.Contains(t, out, "<strong>key</strong>")
	assert.Contains(t, out, "No upcoming events. Check back soon!")
	assert.Contains(t, out, `data-state="empty"`)
	assert.Contains(t, out, "ecclub@binghamton.edu")
}

func TestMarkdownDoesNotPassRawHTML(t *testing.T) {
	out := render(t, "articles.html", Page{Title: "Articles", Path: "/articles", Site: site(), Content: models.NewSection([]models.Article{{
		Title: "<b>Bold</b> title", Date: "2024-04-15", Paragraph: "<script>alert(1)</script> hello",
	}})})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;b&gt;Bold&lt;/b&gt; title")
}

func TestEventsRendersBothBuckets(t *testing.T) {
	out := render(t, "events.html", Page{Title: "Events", Path: "/events", Site: site(), Content: models.EventsView{
		Upcoming: models.NewSection([]models.Event{{Title: "Pitch Night", Date: "2024-11-14", Location: "Innovation Hub", Description: "Pitches."}}),
		Past:     models.NewSection([]models.Event{{Title: "Fall GIM", Date: "2024-09-12", Description: "Kickoff."}}),
	}})

	assert.Contains(t, out, "Pitch Night")
	assert.Contains(t, out, "Nov")
	assert.Contains(t, out, "Innovation Hub")
	assert.Contains(t, out, "September 12, 2024")
	assert.NotContains(t, out, "No past events to show.")
}

func TestContactShowsFieldErrors(t *testing.T) {
	out := render(t, "contact.html", Page{Title: "Contact", Path: "/contact", Site: site(), Content: ContactPage{
		Name: "A", Failed: true, Errors: map[string]string{"name": "Name must be at least 2 characters."},
	}})
	assert.Contains(t, out, "Name must be at least 2 characters.")
	assert.NotContains(t, out, "Message Sent!")

	out = render(t, "contact.html", Page{Title: "Contact", Path: "/contact", Site: site(), Content: ContactPage{Sent: true}})
	assert.Contains(t, out, "Message Sent!")
}
