package service

import (
	"sort"
	"time"

	"github.com/ec-club-bing/website/internal/models"
)

// ReferenceDate returns today's calendar day in loc, expressed as UTC midnight so it compares
// directly with parsed event dates.
func ReferenceDate(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PartitionEvents splits events into those on or after the reference day and those strictly
// before it. Every event lands in exactly one bucket and input order is kept within each.
// An event whose date cannot be parsed is never before anything, so it counts as upcoming.
func PartitionEvents(events []models.Event, reference time.Time) (upcoming, past []models.Event) {
	y, m, d := reference.Date()
	ref := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	upcoming = make([]models.Event, 0, len(events))
	past = make([]models.Event, 0, len(events))
	for _, event := range events {
		day, ok := parseEventDate(event.Date)
		if ok && day.Before(ref) {
			past = append(past, event)
			continue
		}
		upcoming = append(upcoming, event)
	}
	return upcoming, past
}

// SortEventsByDate orders upcoming events soonest first and past events most recent first.
// Unparseable dates sort last in both. The sort is stable.
func SortEventsByDate(upcoming, past []models.Event) {
	sortByDate(upcoming, true)
	sortByDate(past, false)
}

func sortByDate(events []models.Event, ascending bool) {
	sort.SliceStable(events, func(i, j int) bool {
		di, iok := parseEventDate(events[i].Date)
		dj, jok := parseEventDate(events[j].Date)
		switch {
		case !iok || !jok:
			return iok && !jok
		case ascending:
			return di.Before(dj)
		default:
			return di.After(dj)
		}
	})
}

// parseEventDate reads a YYYY-MM-DD calendar day as UTC midnight.
func parseEventDate(raw string) (time.Time, bool) {
	day, err := time.ParseInLocation(models.EventDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
