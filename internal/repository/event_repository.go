package repository

import (
	"context"
	"fmt"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// EventFilter narrows an event listing. From keeps events dated on or after the given day.
type EventFilter struct {
	From      string
	Ascending bool
	Limit     int
}

// EventRepository stores events in the events collection.
type EventRepository struct {
	store docstore.Store
}

// NewEventRepository constructs the repository.
func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

// List returns events ordered by date, newest first unless Ascending is set.
func (r *EventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	q := docstore.Query{OrderBy: "date", Direction: docstore.Desc, Limit: filter.Limit}
	if filter.Ascending {
		q.Direction = docstore.Asc
	}
	if filter.From != "" {
		q.Where = append(q.Where, docstore.Filter{Field: "date", Op: docstore.OpGreaterEqual, Value: filter.From})
	}

	docs, err := r.store.List(ctx, models.CollectionEvents, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		event, err := toEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}

// FindByID returns the event or docstore.ErrNotFound.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	doc, err := r.store.Get(ctx, models.CollectionEvents, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return toEvent(*doc)
}

// Create stores the event and fills in its id.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	id, err := r.store.Create(ctx, models.CollectionEvents, event.Fields())
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	return nil
}

// Update replaces the stored event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.store.Update(ctx, models.CollectionEvents, event.ID, event.Fields(), false); err != nil {
		return fmt.Errorf("update event %s: %w", event.ID, err)
	}
	return nil
}

// Delete removes the event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.CollectionEvents, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func toEvent(doc docstore.Document) (*models.Event, error) {
	var event models.Event
	if err := decodeDocument(doc, &event); err != nil {
		return nil, err
	}
	event.ID = doc.ID
	return &event, nil
}
