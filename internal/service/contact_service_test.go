package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ec-club-bing/website/internal/dto"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

func TestContactServiceSubmitLogsMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewContactService(nil, zap.New(core))
	svc.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }

	msg, err := svc.Submit(context.Background(), dto.ContactForm{
		Name: " Ada ", Email: "ada@binghamton.edu", Subject: "Sponsorship", Message: "We would love to sponsor Pitch Night.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC), msg.ReceivedAt)

	entries := logs.FilterMessage("contact message received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Sponsorship", entries[0].ContextMap()["subject"])
}

func TestContactServiceValidation(t *testing.T) {
	svc := NewContactService(nil, nil)

	_, err := svc.Submit(context.Background(), dto.ContactForm{Name: "A", Email: "nope", Subject: "Hi", Message: "short"})
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	for field, want := range map[string]string{
		"name":    "Name must be at least 2 characters.",
		"email":   "Please enter a valid email address.",
		"subject": "Subject must be at least 5 characters.",
		"message": "Message must be at least 10 characters.",
	} {
		got, ok := appErr.Field(field)
		require.True(t, ok, field)
		assert.Equal(t, want, got)
	}
}
