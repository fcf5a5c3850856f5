package calendar

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shift-manager/internal/models"
)

const (
	icalTimestampUTC = "20060102T150405Z"
	icalDateTime     = "20060102T150405"
	icalDate         = "20060102"
)

// LAST-MODIFIED as a raw property name, so we do not depend on the
// library's constant variants.
const propLastModified = ics.ComponentProperty("LAST-MODIFIED")

// ICSStore implements Gateway on top of a single local .ics file. It models
// an external store with exactly one writable calendar whose id is the file
// name without extension.
type ICSStore struct {
	path       string
	calendarID string
	now        func() time.Time
	logger     *logrus.Logger

	mu sync.Mutex
}

func NewICSStore(path string) *ICSStore {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	base := filepath.Base(path)
	calendarID := strings.TrimSuffix(base, filepath.Ext(base))

	return &ICSStore{
		path:       path,
		calendarID: calendarID,
		now:        time.Now,
		logger:     logger,
	}
}

// RequestAccess checks that the backing file can be opened for writing.
// A permission failure is a denial, not an error.
func (s *ICSStore) RequestAccess(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		if os.IsPermission(err) {
			s.logger.WithField("path", s.path).Warn("Calendar file not writable, access denied")
			return false, nil
		}
		s.logger.WithError(err).Error("Failed to open calendar file")
		return false, err
	}
	f.Close()

	return true, nil
}

func (s *ICSStore) FetchEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, err := s.load()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			// Skip the broken event, keep the rest of the feed usable.
			s.logger.WithError(perr).Warn("Skipping unparseable calendar event")
			continue
		}
		if ev.Start.Before(start) || ev.Start.After(end) {
			continue
		}
		events = append(events, ev)
	}

	s.logger.WithFields(logrus.Fields{
		"start": models.DayKey(start),
		"end":   models.DayKey(end),
		"count": len(events),
	}).Debug("Fetched calendar events")

	return events, nil
}

func (s *ICSStore) CreateEvent(ctx context.Context, template models.ShiftTemplate, date time.Time, calendarID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if calendarID != s.calendarID {
		s.logger.WithField("calendar_id", calendarID).Warn("Unknown target calendar")
		return "", ErrCalendarNotFound
	}

	cal, err := s.load()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	eventID := uuid.NewString()
	ve := cal.AddEvent(eventID)
	ve.SetSummary(template.Name)
	// The description carries the template id verbatim; the pull side
	// matches it byte for byte against the catalog.
	ve.SetDescription(template.ID)
	ve.SetProperty(propLastModified, s.now().UTC().Format(icalTimestampUTC))

	day := models.DayOf(date)
	if template.AllDay {
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
	} else {
		ve.SetStartAt(template.StartOn(day))
		ve.SetEndAt(template.EndOn(day))
	}

	if err := s.save(cal); err != nil {
		s.logger.WithError(err).Error("Failed to save calendar file")
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	s.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"shift_id": template.ID,
		"date":     models.DayKey(day),
	}).Info("Calendar event created")

	return eventID, nil
}

func (s *ICSStore) DeleteEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]ics.Component, 0, len(cal.Components))
	found := false
	for _, comp := range cal.Components {
		if ve, ok := comp.(*ics.VEvent); ok && eventUID(ve) == eventID {
			found = true
			continue
		}
		kept = append(kept, comp)
	}

	if !found {
		s.logger.WithField("event_id", eventID).Debug("Event not found for deletion")
		return ErrEventNotFound
	}

	cal.Components = kept
	if err := s.save(cal); err != nil {
		s.logger.WithError(err).Error("Failed to save calendar file after deletion")
		return err
	}

	s.logger.WithField("event_id", eventID).Info("Calendar event deleted")
	return nil
}

func (s *ICSStore) WritableCalendars(ctx context.Context) ([]CalendarInfo, error) {
	return []CalendarInfo{{ID: s.calendarID, Title: s.calendarID}}, nil
}

func (s *ICSStore) DefaultCalendarID(ctx context.Context) (string, bool) {
	return s.calendarID, true
}

func (s *ICSStore) load() (*ics.Calendar, error) {
	body, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ics.NewCalendar(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ics.NewCalendar(), nil
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar file: %w", err)
	}
	return cal, nil
}

func (s *ICSStore) save(cal *ics.Calendar) error {
	return os.WriteFile(s.path, []byte(cal.Serialize()), 0o644)
}

func parseVEvent(ve *ics.VEvent) (Event, error) {
	var out Event

	out.ID = eventUID(ve)
	if out.ID == "" {
		return out, fmt.Errorf("missing UID")
	}

	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
		out.Note = p.Value
	}

	dtStart := ve.GetProperty(ics.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, fmt.Errorf("missing DTSTART")
	}

	// VALUE=DATE or a date-only value means all-day.
	if params := dtStart.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			out.AllDay = true
		}
	}
	if !strings.Contains(dtStart.Value, "T") {
		out.AllDay = true
	}

	start, err := parseICSTime(dtStart.Value)
	if err != nil {
		return out, fmt.Errorf("bad DTSTART: %w", err)
	}
	out.Start = start

	if dtEnd := ve.GetProperty(ics.ComponentPropertyDtEnd); dtEnd != nil && dtEnd.Value != "" {
		if end, err := parseICSTime(dtEnd.Value); err == nil {
			out.End = end
		}
	}

	if lm := ve.GetProperty(propLastModified); lm != nil && lm.Value != "" {
		if t, err := parseICSTime(lm.Value); err == nil {
			out.LastModified = t
		}
	}

	return out, nil
}

func eventUID(ve *ics.VEvent) string {
	p := ve.GetProperty(ics.ComponentPropertyUniqueId)
	if p == nil {
		return ""
	}
	return p.Value
}

// parseICSTime parses the basic ICS date/date-time forms: UTC timestamps,
// local timestamps, and date-only values.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse(icalTimestampUTC, v)
		if err != nil {
			return time.Time{}, err
		}
		// Day partitioning happens in local time; keep the instant but
		// move it into the local zone.
		return t.In(time.Local), nil
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation(icalDateTime, v, time.Local)
	}
	return time.ParseInLocation(icalDate, v, time.Local)
}
