package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	"github.com/ec-club-bing/website/internal/validation"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

const eventNotFound = "Event not found."

// EventService backs the event admin forms.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	cache     *CacheService
	logger    *zap.Logger
}

// NewEventService constructs the service. cache may be nil.
func NewEventService(repo eventRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// List returns every event, latest date first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.List(ctx, repository.EventFilter{})
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return nil, fromStoreError(err, eventNotFound)
	}
	return events, nil
}

// ListPartitioned returns every event split around reference: upcoming soonest first, past most
// recent first.
func (s *EventService) ListPartitioned(ctx context.Context, reference time.Time) (*models.EventBuckets, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, past := PartitionEvents(events, reference)
	SortEventsByDate(upcoming, past)
	return &models.EventBuckets{Upcoming: upcoming, Past: past}, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, eventNotFound)
	}
	return event, nil
}

// Create validates the form and stores a new event. Nothing is written when validation fails.
func (s *EventService) Create(ctx context.Context, form dto.EventForm) (*models.Event, error) {
	form.Normalize()
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	event := eventFromForm(form)
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error("failed to create event", zap.Error(err))
		return nil, fromStoreError(err, eventNotFound)
	}
	s.cache.InvalidateListings(ctx)
	return event, nil
}

// Update validates the form and replaces an existing event.
func (s *EventService) Update(ctx context.Context, id string, form dto.EventForm) (*models.Event, error) {
	form.Normalize()
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fromStoreError(err, eventNotFound)
	}
	event := eventFromForm(form)
	event.ID = id
	if err := s.repo.Update(ctx, event); err != nil {
		s.logger.Error("failed to update event", zap.String("id", id), zap.Error(err))
		return nil, fromStoreError(err, eventNotFound)
	}
	s.cache.InvalidateListings(ctx)
	return event, nil
}

// Delete removes an event once the caller has confirmed. Without confirmation nothing changes.
func (s *EventService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "Deleting an event cannot be undone. Confirm to continue.")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fromStoreError(err, eventNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete event", zap.String("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "Failed to delete the event.")
	}
	s.cache.InvalidateListings(ctx)
	return nil
}

func eventFromForm(form dto.EventForm) *models.Event {
	return &models.Event{
		Title:       form.Title,
		Date:        form.Date,
		Time:        form.Time,
		Location:    form.Location,
		Description: form.Description,
		Link:        form.Link,
	}
}
