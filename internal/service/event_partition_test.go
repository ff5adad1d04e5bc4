package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPartitionEventsScenario(t *testing.T) {
	events := []models.Event{{ID: "a", Date: "2024-01-10"}, {ID: "b", Date: "2024-06-01"}}

	upcoming, past := PartitionEvents(events, day(2024, 3, 1))

	assert.Equal(t, []models.Event{{ID: "b", Date: "2024-06-01"}}, upcoming)
	assert.Equal(t, []models.Event{{ID: "a", Date: "2024-01-10"}}, past)
}

func TestPartitionEventsTodayIsUpcoming(t *testing.T) {
	events := []models.Event{{ID: "today", Date: "2024-03-01"}, {ID: "yesterday", Date: "2024-02-29"}}

	upcoming, past := PartitionEvents(events, time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))

	require.Len(t, upcoming, 1)
	assert.Equal(t, "today", upcoming[0].ID)
	require.Len(t, past, 1)
	assert.Equal(t, "yesterday", past[0].ID)
}

func TestPartitionEventsUnparseableDateIsUpcoming(t *testing.T) {
	upcoming, past := PartitionEvents([]models.Event{{ID: "x", Date: "next spring"}}, day(2024, 3, 1))
	assert.Len(t, upcoming, 1)
	assert.Empty(t, past)
}

func TestPartitionEventsIsTotalAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := rng.Intn(20)
		events := make([]models.Event, n)
		for i := range events {
			events[i] = models.Event{
				ID:   string(rune('a' + i)),
				Date: day(2024, 1, 1).AddDate(0, 0, rng.Intn(365)).Format(models.EventDateLayout),
			}
		}
		ref := day(2024, 1, 1).AddDate(0, 0, rng.Intn(365))

		upcoming, past := PartitionEvents(events, ref)

		require.Equal(t, n, len(upcoming)+len(past))
		seen := make(map[string]int)
		for _, e := range upcoming {
			seen[e.ID]++
			d, _ := parseEventDate(e.Date)
			assert.False(t, d.Before(ref))
		}
		for _, e := range past {
			seen[e.ID]++
			d, _ := parseEventDate(e.Date)
			assert.True(t, d.Before(ref))
		}
		for _, e := range events {
			assert.Equal(t, 1, seen[e.ID])
		}

		shuffled := append([]models.Event(nil), events...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		up2, past2 := PartitionEvents(shuffled, ref)
		assert.ElementsMatch(t, upcoming, up2)
		assert.ElementsMatch(t, past, past2)
	}
}

func TestPartitionEventsPreservesInputOrder(t *testing.T) {
	events := []models.Event{
		{ID: "1", Date: "2024-08-01"},
		{ID: "2", Date: "2024-01-01"},
		{ID: "3", Date: "2024-05-01"},
		{ID: "4", Date: "2023-12-01"},
	}
	upcoming, past := PartitionEvents(events, day(2024, 3, 1))
	assert.Equal(t, []string{"1", "3"}, ids(upcoming))
	assert.Equal(t, []string{"2", "4"}, ids(past))
}

func TestReferenceDateUsesSiteTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on March 2nd is still March 1st in New York.
	now := time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, day(2024, 3, 1), ReferenceDate(now, ny))
	assert.Equal(t, day(2024, 3, 2), ReferenceDate(now, nil))
}

func TestSortEventsByDate(t *testing.T) {
	upcoming := []models.Event{{ID: "u2", Date: "2024-07-01"}, {ID: "bad", Date: "tbd"}, {ID: "u1", Date: "2024-04-01"}}
	past := []models.Event{{ID: "p1", Date: "2023-01-01"}, {ID: "p2", Date: "2024-02-01"}}

	SortEventsByDate(upcoming, past)

	assert.Equal(t, []string{"u1", "u2", "bad"}, ids(upcoming))
	assert.Equal(t, []string{"p2", "p1"}, ids(past))
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
