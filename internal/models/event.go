package models

// CollectionEvents is the document collection holding club events.
const CollectionEvents = "events"

// EventDateLayout is the calendar-day format of Event.Date.
const EventDateLayout = "2006-01-02"

// Event is a dated club happening. Date is a calendar day without zone.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// EventBuckets is the admin event list split around today.
type EventBuckets struct {
	Upcoming []Event `json:"upcoming"`
	Past     []Event `json:"past"`
}

// EventStatus selects a bucket of the upcoming/past partition.
type EventStatus string

const (
	EventStatusAll      EventStatus = "all"
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusPast     EventStatus = "past"
)

// Fields returns the stored representation without the id. Empty optional fields are omitted.
func (e Event) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"title":       e.Title,
		"date":        e.Date,
		"description": e.Description,
	}
	if e.Time != "" {
		fields["time"] = e.Time
	}
	if e.Location != "" {
		fields["location"] = e.Location
	}
	if e.Link != "" {
		fields["link"] = e.Link
	}
	return fields
}
