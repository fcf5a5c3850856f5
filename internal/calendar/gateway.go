package calendar

import (
	"context"
	"errors"
	"time"

	"shift-manager/internal/models"
)

var (
	// ErrAccessDenied is returned when the store refuses access. Terminal
	// for the current operation; callers must not retry automatically.
	ErrAccessDenied = errors.New("calendar access denied")

	// ErrCalendarNotFound is returned when a calendar id does not resolve
	// to a writable calendar.
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrEventNotFound is returned when an event id no longer resolves.
	ErrEventNotFound = errors.New("event not found")

	// ErrWriteFailed is returned when the underlying store rejects a create.
	ErrWriteFailed = errors.New("failed to save event")
)

// Event is an event as seen in the external calendar store. The Note field
// is the only channel that round-trips shift template identity: for events
// created by this system it holds the template id verbatim, nothing else.
type Event struct {
	ID           string
	Title        string
	Start        time.Time
	End          time.Time
	AllDay       bool
	Note         string
	LastModified time.Time
}

// CalendarInfo describes a writable calendar in the external store.
type CalendarInfo struct {
	ID    string
	Title string
}

// Gateway is the capability surface the reconciliation engine needs from
// the external calendar store. RequestAccess must be granted before any
// other call is trusted.
type Gateway interface {
	RequestAccess(ctx context.Context) (bool, error)
	FetchEvents(ctx context.Context, start, end time.Time) ([]Event, error)
	CreateEvent(ctx context.Context, template models.ShiftTemplate, date time.Time, calendarID string) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
	WritableCalendars(ctx context.Context) ([]CalendarInfo, error)
	DefaultCalendarID(ctx context.Context) (string, bool)
}
