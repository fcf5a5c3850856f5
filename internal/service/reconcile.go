package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shift-manager/internal/calendar"
	"shift-manager/internal/models"
)

// ErrNoCalendar is returned by Assign when the template has no target
// calendar. The caller reports it; it is not a store failure.
var ErrNoCalendar = errors.New("shift template has no target calendar")

// ReconcileOptions tune engine behavior that the original design left
// hardcoded.
type ReconcileOptions struct {
	// WindowDays is the half-width of the pull window in days. Zero means
	// the default window of one calendar month either side of now.
	WindowDays int

	// PurgeOrphans makes PurgeOrphans run as part of every Sync, dropping
	// ledger rows whose template no longer exists. When false orphans stay
	// inert in the ledger.
	PurgeOrphans bool
}

// ReconcileService synchronizes the assignment ledger against the external
// calendar store. Pull rebuilds the ledger from fetched events; push
// creates events and updates the ledger.
//
// A single mutex serializes Sync, Assign, Remove and PurgeOrphans: the
// full-replace semantics of pull would otherwise clobber a concurrent push.
type ReconcileService struct {
	catalog *ShiftCatalogService
	ledger  *AssignmentLedgerService
	gateway calendar.Gateway
	opts    ReconcileOptions
	logger  *logrus.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewReconcileService(
	catalog *ShiftCatalogService,
	ledger *AssignmentLedgerService,
	gateway calendar.Gateway,
	opts ReconcileOptions,
) *ReconcileService {
	return &ReconcileService{
		catalog: catalog,
		ledger:  ledger,
		gateway: gateway,
		opts:    opts,
		logger:  logrus.New(),
		now:     time.Now,
	}
}

// Sync pulls events from the calendar store and rebuilds the ledger
// wholesale. Events whose note does not match a known template id are
// foreign and ignored; among valid events on the same day the one with the
// latest last-modified timestamp wins, ties going to the earliest in fetch
// order. A fetch failure leaves the ledger untouched.
func (s *ReconcileService) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted, err := s.gateway.RequestAccess(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to request calendar access")
		return err
	}
	if !granted {
		s.logger.Warn("Calendar access denied, sync aborted")
		return calendar.ErrAccessDenied
	}

	templates, err := s.catalog.List()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.ID] = true
	}

	start, end := s.windowBounds(s.now())
	events, err := s.gateway.FetchEvents(ctx, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch calendar events, ledger unchanged")
		return err
	}

	// Partition by calendar day, preserving fetch order within each day.
	byDay := make(map[string][]calendar.Event)
	dayKeys := make([]string, 0)
	for _, ev := range events {
		if !known[ev.Note] {
			// Foreign or garbage note: not ours, never touched.
			continue
		}
		key := models.DayKey(ev.Start)
		if _, seen := byDay[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		byDay[key] = append(byDay[key], ev)
	}
	sort.Strings(dayKeys)

	// Reuse existing assignment ids where the winning event is unchanged,
	// so repeated syncs with no external changes produce identical ledgers.
	current, err := s.ledger.Load()
	if err != nil {
		return err
	}
	existing := make(map[string]models.Assignment, len(current))
	for _, a := range current {
		existing[models.DayKey(a.Date)] = a
	}

	rebuilt := make([]models.Assignment, 0, len(dayKeys))
	for _, key := range dayKeys {
		winner := pickWinner(byDay[key])
		day := models.DayOf(winner.Start)

		assignment := models.Assignment{
			ID:      uuid.NewString(),
			ShiftID: winner.Note,
			Date:    day,
			EventID: winner.ID,
		}
		if prev, ok := existing[key]; ok && prev.ShiftID == assignment.ShiftID && prev.EventID == assignment.EventID {
			assignment.ID = prev.ID
		}
		rebuilt = append(rebuilt, assignment)
	}

	if err := s.ledger.SaveAll(rebuilt); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"fetched":     len(events),
		"assignments": len(rebuilt),
		"start":       models.DayKey(start),
		"end":         models.DayKey(end),
	}).Info("Ledger rebuilt from calendar")

	if s.opts.PurgeOrphans {
		return s.purgeOrphansLocked()
	}
	return nil
}

// Assign binds the template to the date's calendar day, creating a calendar
// event and superseding any assignment already on that day. The new event
// is created first; only after it exists is the old event deleted and the
// old ledger row dropped, so a failed create leaves the previous assignment
// intact.
func (s *ReconcileService) Assign(ctx context.Context, template models.ShiftTemplate, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if template.CalendarID == "" {
		s.logger.WithField("shift_id", template.ID).Warn("Shift template has no target calendar")
		return ErrNoCalendar
	}

	granted, err := s.gateway.RequestAccess(ctx)
	if err != nil {
		return err
	}
	if !granted {
		s.logger.Warn("Calendar access denied, assign aborted")
		return calendar.ErrAccessDenied
	}

	day := models.DayOf(date)

	assignments, err := s.ledger.Load()
	if err != nil {
		return err
	}

	eventID, err := s.gateway.CreateEvent(ctx, template, day, template.CalendarID)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"shift_id": template.ID,
			"date":     models.DayKey(day),
		}).Error("Failed to create calendar event")
		return err
	}

	kept := make([]models.Assignment, 0, len(assignments)+1)
	for _, a := range assignments {
		if !a.SameDay(day) {
			kept = append(kept, a)
			continue
		}
		// Superseded. Best-effort delete of the old event; an event that
		// is already gone is not worth failing the assignment over.
		if a.EventID != "" {
			if derr := s.gateway.DeleteEvent(ctx, a.EventID); derr != nil {
				s.logger.WithError(derr).WithField("event_id", a.EventID).Warn("Failed to delete superseded event")
			}
		}
	}

	kept = append(kept, models.Assignment{
		ID:      uuid.NewString(),
		ShiftID: template.ID,
		Date:    day,
		EventID: eventID,
	})

	if err := s.ledger.SaveAll(kept); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id": template.ID,
		"date":     models.DayKey(day),
		"event_id": eventID,
	}).Info("Shift assigned")

	return nil
}

// Remove clears the assignment on the date's calendar day, deleting its
// backing event. A missing event is swallowed; the ledger row goes either
// way.
func (s *ReconcileService) Remove(ctx context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted, err := s.gateway.RequestAccess(ctx)
	if err != nil {
		return err
	}
	if !granted {
		s.logger.Warn("Calendar access denied, remove aborted")
		return calendar.ErrAccessDenied
	}

	day := models.DayOf(date)

	assignments, err := s.ledger.Load()
	if err != nil {
		return err
	}

	kept := make([]models.Assignment, 0, len(assignments))
	removed := false
	for _, a := range assignments {
		if !a.SameDay(day) {
			kept = append(kept, a)
			continue
		}
		removed = true
		if a.EventID != "" {
			if derr := s.gateway.DeleteEvent(ctx, a.EventID); derr != nil && !errors.Is(derr, calendar.ErrEventNotFound) {
				return derr
			}
		}
	}

	if !removed {
		s.logger.WithField("date", models.DayKey(day)).Debug("No assignment to remove")
		return nil
	}

	if err := s.ledger.SaveAll(kept); err != nil {
		return err
	}

	s.logger.WithField("date", models.DayKey(day)).Info("Assignment removed")
	return nil
}

// PurgeOrphans drops ledger rows whose template no longer exists in the
// catalog. Their calendar events are left alone.
func (s *ReconcileService) PurgeOrphans(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeOrphansLocked()
}

func (s *ReconcileService) purgeOrphansLocked() error {
	templates, err := s.catalog.List()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.ID] = true
	}

	assignments, err := s.ledger.Load()
	if err != nil {
		return err
	}

	kept := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if known[a.ShiftID] {
			kept = append(kept, a)
		}
	}

	if len(kept) == len(assignments) {
		return nil
	}

	s.logger.WithField("purged", len(assignments)-len(kept)).Info("Purging orphaned assignments")
	return s.ledger.SaveAll(kept)
}

func (s *ReconcileService) windowBounds(now time.Time) (time.Time, time.Time) {
	if s.opts.WindowDays > 0 {
		return now.AddDate(0, 0, -s.opts.WindowDays), now.AddDate(0, 0, s.opts.WindowDays)
	}
	return now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)
}

// pickWinner selects the event with the latest last-modified timestamp.
// The sort is stable, so equal timestamps resolve to whichever event came
// first in fetch order.
func pickWinner(events []calendar.Event) calendar.Event {
	sorted := make([]calendar.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastModified.After(sorted[j].LastModified)
	})
	return sorted[0]
}
