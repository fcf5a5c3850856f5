package service

import (
	"testing"
	"time"

	"shift-manager/internal/models"
)

func TestGetResolvesTemplate(t *testing.T) {
	_, catalog, ledger, _, assignmentRepo, _ := newTestEngine(ReconcileOptions{})

	catalog.Add(dayShiftTemplate("A", "Early", "work"))
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	assignmentRepo.assignments = []models.Assignment{
		{ID: "x", ShiftID: "A", Date: date, EventID: "e1"},
	}

	assignment, template, err := ledger.Get(date.Add(14 * time.Hour)) // afternoon of the same day
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if assignment == nil || template == nil {
		t.Fatal("expected a resolved assignment")
	}
	if template.Name != "Early" {
		t.Errorf("template = %s, want Early", template.Name)
	}
}

func TestGetExcludesOrphans(t *testing.T) {
	_, catalog, ledger, _, assignmentRepo, _ := newTestEngine(ReconcileOptions{})

	catalog.Add(dayShiftTemplate("A", "Early", "work"))
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	assignmentRepo.assignments = []models.Assignment{
		{ID: "x", ShiftID: "A", Date: date, EventID: "e1"},
	}

	// Delete the template: the assignment row stays but stops resolving.
	if err := catalog.Delete("A"); err != nil {
		t.Fatalf("delete template: %v", err)
	}

	assignment, template, err := ledger.Get(date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if assignment != nil || template != nil {
		t.Errorf("orphan resolved to (%+v, %+v), want nothing", assignment, template)
	}

	raw, _ := ledger.Load()
	if len(raw) != 1 {
		t.Errorf("raw ledger has %d entries, want the orphan retained", len(raw))
	}
}

func TestGetRangeInclusiveSortedAndOrphanFree(t *testing.T) {
	_, catalog, ledger, _, assignmentRepo, _ := newTestEngine(ReconcileOptions{})

	catalog.Add(dayShiftTemplate("A", "Early", "work"))
	catalog.Add(dayShiftTemplate("B", "Late", "work"))

	d := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.Local) }
	assignmentRepo.assignments = []models.Assignment{
		{ID: "w", ShiftID: "B", Date: d(15), EventID: "e3"},
		{ID: "x", ShiftID: "A", Date: d(1), EventID: "e1"},
		{ID: "y", ShiftID: "orphan", Date: d(10), EventID: "e2"},
		{ID: "z", ShiftID: "A", Date: d(31), EventID: "e4"},
	}

	shifts, err := ledger.GetRange(d(1), d(31))
	if err != nil {
		t.Fatalf("get range: %v", err)
	}

	if len(shifts) != 3 {
		t.Fatalf("range has %d entries, want 3 (orphan excluded, bounds inclusive)", len(shifts))
	}
	for i := 1; i < len(shifts); i++ {
		if shifts[i].Date.Before(shifts[i-1].Date) {
			t.Errorf("range not date-ascending at index %d", i)
		}
	}
	if shifts[0].Template.ID != "A" || shifts[1].Template.ID != "B" || shifts[2].Template.ID != "A" {
		t.Errorf("unexpected range order: %+v", shifts)
	}
}

func TestGetRangeExcludesOutsideDays(t *testing.T) {
	_, catalog, ledger, _, assignmentRepo, _ := newTestEngine(ReconcileOptions{})

	catalog.Add(dayShiftTemplate("A", "Early", "work"))
	d := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.Local) }
	assignmentRepo.assignments = []models.Assignment{
		{ID: "x", ShiftID: "A", Date: d(5), EventID: "e1"},
		{ID: "y", ShiftID: "A", Date: d(20), EventID: "e2"},
	}

	shifts, err := ledger.GetRange(d(1), d(10))
	if err != nil {
		t.Fatalf("get range: %v", err)
	}
	if len(shifts) != 1 || models.DayKey(shifts[0].Date) != "2025-03-05" {
		t.Errorf("range = %+v, want only 2025-03-05", shifts)
	}
}
