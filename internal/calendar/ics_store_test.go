package calendar

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shift-manager/internal/models"
)

func newTestStore(t *testing.T) *ICSStore {
	t.Helper()
	return NewICSStore(filepath.Join(t.TempDir(), "work.ics"))
}

func testTemplate() models.ShiftTemplate {
	return models.ShiftTemplate{
		ID:          "3f1c2a9e-aaaa-bbbb-cccc-000000000001",
		Name:        "Early",
		StartMinute: 9 * 60,
		EndMinute:   17 * 60,
		Color:       "#00AA00",
		CalendarID:  "work",
	}
}

func TestRequestAccessCreatesFile(t *testing.T) {
	store := newTestStore(t)

	granted, err := store.RequestAccess(context.Background())
	if err != nil {
		t.Fatalf("request access: %v", err)
	}
	if !granted {
		t.Error("access denied on a writable directory")
	}
}

func TestCreateFetchRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tmpl := testTemplate()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	eventID, err := store.CreateEvent(ctx, tmpl, date, "work")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if eventID == "" {
		t.Fatal("empty event id")
	}

	events, err := store.FetchEvents(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("fetched %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.ID != eventID {
		t.Errorf("event id = %s, want %s", ev.ID, eventID)
	}
	if ev.Title != "Early" {
		t.Errorf("title = %q, want Early", ev.Title)
	}
	// The note must round-trip the template id byte for byte.
	if ev.Note != tmpl.ID {
		t.Errorf("note = %q, want %q", ev.Note, tmpl.ID)
	}
	if models.DayKey(ev.Start) != "2025-03-10" {
		t.Errorf("event day = %s, want 2025-03-10", models.DayKey(ev.Start))
	}
	if ev.Start.Hour() != 9 || ev.End.Hour() != 17 {
		t.Errorf("event hours = %d..%d, want 9..17", ev.Start.Hour(), ev.End.Hour())
	}
	if ev.LastModified.IsZero() {
		t.Error("missing last-modified stamp")
	}
	if ev.AllDay {
		t.Error("timed event flagged all-day")
	}
}

func TestCreateAllDayEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tmpl := testTemplate()
	tmpl.AllDay = true
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	if _, err := store.CreateEvent(ctx, tmpl, date, "work"); err != nil {
		t.Fatalf("create all-day event: %v", err)
	}

	events, err := store.FetchEvents(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("fetched %d events, want 1", len(events))
	}
	if !events[0].AllDay {
		t.Error("all-day event not flagged all-day after round trip")
	}
	if models.DayKey(events[0].Start) != "2025-03-10" {
		t.Errorf("all-day start = %s, want 2025-03-10", models.DayKey(events[0].Start))
	}
}

func TestCreateEventUnknownCalendar(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateEvent(context.Background(), testTemplate(), time.Now(), "someone-elses-calendar")
	if !errors.Is(err, ErrCalendarNotFound) {
		t.Errorf("err = %v, want ErrCalendarNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	eventID, err := store.CreateEvent(ctx, testTemplate(), date, "work")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := store.DeleteEvent(ctx, eventID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	events, err := store.FetchEvents(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("fetched %d events after delete, want 0", len(events))
	}
}

func TestDeleteMissingEvent(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteEvent(context.Background(), "no-such-uid"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestFetchSkipsOutOfRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inRange := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	outOfRange := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if _, err := store.CreateEvent(ctx, testTemplate(), inRange, "work"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateEvent(ctx, testTemplate(), outOfRange, "work"); err != nil {
		t.Fatalf("create: %v", err)
	}

	events, err := store.FetchEvents(ctx, inRange.AddDate(0, 0, -7), inRange.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("fetched %d events, want only the in-range one", len(events))
	}
}

func TestWritableCalendarsAndDefault(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	calendars, err := store.WritableCalendars(ctx)
	if err != nil {
		t.Fatalf("writable calendars: %v", err)
	}
	if len(calendars) != 1 || calendars[0].ID != "work" {
		t.Errorf("calendars = %+v, want single id work", calendars)
	}

	id, ok := store.DefaultCalendarID(ctx)
	if !ok || id != "work" {
		t.Errorf("default calendar = %q/%v, want work/true", id, ok)
	}
}

func TestFetchOnMissingFile(t *testing.T) {
	store := newTestStore(t)

	events, err := store.FetchEvents(context.Background(), time.Now().AddDate(0, -1, 0), time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("fetch on missing file: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("fetched %d events from a missing file, want 0", len(events))
	}
}
