package models

// ListingState is the lifecycle of a listing section on a public page.
type ListingState string

const (
	ListingLoading ListingState = "loading"
	ListingLoaded  ListingState = "loaded"
	ListingEmpty   ListingState = "empty"
)

// Section is one independently fetched list on a page.
type Section[T any] struct {
	State ListingState `json:"state"`
	Items []T          `json:"items"`
}

// NewSection settles a section from fetched items. A nil or empty slice is Empty.
func NewSection[T any](items []T) Section[T] {
	if len(items) == 0 {
		return Section[T]{State: ListingEmpty, Items: []T{}}
	}
	return Section[T]{State: ListingLoaded, Items: items}
}

// HomeView backs the home page.
type HomeView struct {
	Homepage HomepageContent  `json:"homepage"`
	Settings SiteSettings     `json:"settings"`
	Articles Section[Article] `json:"articles"`
	Events   Section[Event]   `json:"events"`
}

// EventsView backs the events page.
type EventsView struct {
	Upcoming Section[Event] `json:"upcoming"`
	Past     Section[Event] `json:"past"`
}
