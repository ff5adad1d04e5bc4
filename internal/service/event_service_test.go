package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

func validEventForm() dto.EventForm {
	return dto.EventForm{
		Title:       "Pitch Night",
		Date:        "2024-11-14",
		Time:        "6:30 PM",
		Location:    "Innovation Hub",
		Description: "Student founders pitch to alumni judges.",
	}
}

func newEventService(t *testing.T) (*EventService, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	return NewEventService(repository.NewEventRepository(store), nil, nil, nil), store
}

func TestEventServiceValidation(t *testing.T) {
	svc, store := newEventService(t)
	form := validEventForm()
	form.Link = "not a url"
	form.Date = ""

	_, err := svc.Create(context.Background(), form)
	appErr := requireAppError(t, err, appErrors.ErrValidation)

	msg, ok := appErr.Field("link")
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid URL or leave it blank.", msg)
	msg, ok = appErr.Field("date")
	require.True(t, ok)
	assert.Equal(t, "An event date is required.", msg)
	assert.Equal(t, 0, store.Len(models.CollectionEvents))
}

func TestEventServiceOptionalFieldsMayBeBlank(t *testing.T) {
	svc, _ := newEventService(t)
	form := validEventForm()
	form.Time, form.Location, form.Link = "", "", ""

	created, err := svc.Create(context.Background(), form)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestEventServiceDeleteWithoutConfirmationKeepsEvent(t *testing.T) {
	svc, store := newEventService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validEventForm())
	require.NoError(t, err)

	requireAppError(t, svc.Delete(ctx, created.ID, false), appErrors.ErrConfirmationRequired)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, 1, store.Len(models.CollectionEvents))
}

func TestEventServiceGetMissing(t *testing.T) {
	svc, _ := newEventService(t)

	_, err := svc.Get(context.Background(), "nope")
	appErr := requireAppError(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Event not found.", appErr.Message)
}

func TestEventServiceListNewestFirst(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()
	for _, date := range []string{"2024-01-10", "2024-06-01", "2024-03-01"} {
		form := validEventForm()
		form.Date = date
		_, err := svc.Create(ctx, form)
		require.NoError(t, err)
	}

	events, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "2024-06-01", events[0].Date)
	assert.Equal(t, "2024-01-10", events[2].Date)
}

func TestEventServiceListPartitioned(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()
	for _, date := range []string{"2024-01-10", "2024-06-01", "2024-03-01", "2024-02-15", "2024-04-20"} {
		form := validEventForm()
		form.Date = date
		_, err := svc.Create(ctx, form)
		require.NoError(t, err)
	}

	buckets, err := svc.ListPartitioned(ctx, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-04-20", "2024-06-01"}, dates(buckets.Upcoming))
	assert.Equal(t, []string{"2024-02-15", "2024-01-10"}, dates(buckets.Past))
}
