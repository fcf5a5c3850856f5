package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shift-manager/internal/calendar"
	"shift-manager/internal/models"
)

// In-memory repository and gateway doubles used across the service tests.

type memTemplateRepo struct {
	templates []models.ShiftTemplate
}

func (r *memTemplateRepo) GetAll() ([]models.ShiftTemplate, error) {
	out := make([]models.ShiftTemplate, len(r.templates))
	copy(out, r.templates)
	return out, nil
}

func (r *memTemplateRepo) GetByID(id string) (*models.ShiftTemplate, error) {
	for i := range r.templates {
		if r.templates[i].ID == id {
			t := r.templates[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memTemplateRepo) ReplaceAll(templates []models.ShiftTemplate) error {
	r.templates = make([]models.ShiftTemplate, len(templates))
	copy(r.templates, templates)
	return nil
}

type memAssignmentRepo struct {
	assignments []models.Assignment
	saveErr     error
	saves       int
}

func (r *memAssignmentRepo) GetAll() ([]models.Assignment, error) {
	out := make([]models.Assignment, len(r.assignments))
	copy(out, r.assignments)
	return out, nil
}

func (r *memAssignmentRepo) ReplaceAll(assignments []models.Assignment) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.assignments = make([]models.Assignment, len(assignments))
	copy(r.assignments, assignments)
	return nil
}

// fakeGateway behaves like a tiny calendar store: created events become
// visible to later fetches, deletes remove them.
type fakeGateway struct {
	granted    bool
	accessErr  error
	fetchErr   error
	createErr  error
	deleteErr  error
	events     []calendar.Event
	deleted    []string
	nextID     int
	calendarID string
	now        time.Time
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		granted:    true,
		calendarID: "work",
		now:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local),
	}
}

func (g *fakeGateway) RequestAccess(ctx context.Context) (bool, error) {
	return g.granted, g.accessErr
}

func (g *fakeGateway) FetchEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	out := make([]calendar.Event, 0, len(g.events))
	for _, ev := range g.events {
		if ev.Start.Before(start) || ev.Start.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (g *fakeGateway) CreateEvent(ctx context.Context, template models.ShiftTemplate, date time.Time, calendarID string) (string, error) {
	if g.createErr != nil {
		return "", g.createErr
	}
	if calendarID != g.calendarID {
		return "", calendar.ErrCalendarNotFound
	}
	g.nextID++
	id := fmt.Sprintf("ev-%d", g.nextID)
	g.events = append(g.events, calendar.Event{
		ID:           id,
		Title:        template.Name,
		Start:        template.StartOn(date),
		End:          template.EndOn(date),
		AllDay:       template.AllDay,
		Note:         template.ID,
		LastModified: g.now,
	})
	return id, nil
}

func (g *fakeGateway) DeleteEvent(ctx context.Context, eventID string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i, ev := range g.events {
		if ev.ID == eventID {
			g.events = append(g.events[:i], g.events[i+1:]...)
			g.deleted = append(g.deleted, eventID)
			return nil
		}
	}
	return calendar.ErrEventNotFound
}

func (g *fakeGateway) WritableCalendars(ctx context.Context) ([]calendar.CalendarInfo, error) {
	return []calendar.CalendarInfo{{ID: g.calendarID, Title: "Work"}}, nil
}

func (g *fakeGateway) DefaultCalendarID(ctx context.Context) (string, bool) {
	return g.calendarID, true
}

// blockingGateway parks FetchEvents until released, so a test can hold a
// sync mid-flight and check that nothing else reaches the store meanwhile.
type blockingGateway struct {
	*fakeGateway

	fetchEntered chan struct{}
	fetchRelease chan struct{}

	mu         sync.Mutex
	inFetch    bool
	overlapped bool
}

func newBlockingGateway() *blockingGateway {
	return &blockingGateway{
		fakeGateway:  newFakeGateway(),
		fetchEntered: make(chan struct{}),
		fetchRelease: make(chan struct{}),
	}
}

func (g *blockingGateway) FetchEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	g.mu.Lock()
	g.inFetch = true
	g.mu.Unlock()

	close(g.fetchEntered)
	<-g.fetchRelease

	g.mu.Lock()
	g.inFetch = false
	g.mu.Unlock()

	return g.fakeGateway.FetchEvents(ctx, start, end)
}

func (g *blockingGateway) CreateEvent(ctx context.Context, template models.ShiftTemplate, date time.Time, calendarID string) (string, error) {
	g.mu.Lock()
	if g.inFetch {
		g.overlapped = true
	}
	g.mu.Unlock()
	return g.fakeGateway.CreateEvent(ctx, template, date, calendarID)
}

var errBoom = errors.New("boom")

func newTestEngine(opts ReconcileOptions) (*ReconcileService, *ShiftCatalogService, *AssignmentLedgerService, *memTemplateRepo, *memAssignmentRepo, *fakeGateway) {
	templateRepo := &memTemplateRepo{}
	assignmentRepo := &memAssignmentRepo{}
	gateway := newFakeGateway()

	catalog := NewShiftCatalogService(templateRepo)
	ledger := NewAssignmentLedgerService(assignmentRepo, catalog)
	engine := NewReconcileService(catalog, ledger, gateway, opts)
	engine.now = func() time.Time { return gateway.now }

	return engine, catalog, ledger, templateRepo, assignmentRepo, gateway
}

func dayShiftTemplate(id, name string, calendarID string) models.ShiftTemplate {
	return models.ShiftTemplate{
		ID:          id,
		Name:        name,
		StartMinute: 9 * 60,
		EndMinute:   17 * 60,
		Color:       "#00AA00",
		CalendarID:  calendarID,
	}
}
