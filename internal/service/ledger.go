package service

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"shift-manager/internal/models"
	"shift-manager/internal/repository"
)

// DayShift pairs a calendar day with the shift template assigned to it.
type DayShift struct {
	Date     time.Time
	Template models.ShiftTemplate
}

// AssignmentLedgerService owns the date → shift mapping. It is a local
// mirror of calendar state; the reconciliation engine rebuilds it on pull.
type AssignmentLedgerService struct {
	repo    repository.AssignmentRepository
	catalog *ShiftCatalogService
	logger  *logrus.Logger
}

func NewAssignmentLedgerService(repo repository.AssignmentRepository, catalog *ShiftCatalogService) *AssignmentLedgerService {
	return &AssignmentLedgerService{
		repo:    repo,
		catalog: catalog,
		logger:  logrus.New(),
	}
}

// Load returns every assignment in the ledger, orphans included.
func (s *AssignmentLedgerService) Load() ([]models.Assignment, error) {
	s.logger.Debug("Loading assignment ledger")
	return s.repo.GetAll()
}

// SaveAll overwrites the whole ledger.
func (s *AssignmentLedgerService) SaveAll(assignments []models.Assignment) error {
	s.logger.WithField("count", len(assignments)).Debug("Saving assignment ledger")
	return s.repo.ReplaceAll(assignments)
}

// Get resolves the assignment occupying the given date's calendar day. It
// returns (nil, nil, nil) when the day is empty or the referenced template
// has been deleted from the catalog.
func (s *AssignmentLedgerService) Get(date time.Time) (*models.Assignment, *models.ShiftTemplate, error) {
	assignments, err := s.repo.GetAll()
	if err != nil {
		return nil, nil, err
	}

	for i := range assignments {
		if !assignments[i].SameDay(date) {
			continue
		}

		template, err := s.catalog.GetByID(assignments[i].ShiftID)
		if err != nil {
			return nil, nil, err
		}
		if template == nil {
			// Orphaned assignment: the row stays in the ledger but does
			// not resolve.
			s.logger.WithFields(logrus.Fields{
				"date":     models.DayKey(date),
				"shift_id": assignments[i].ShiftID,
			}).Debug("Assignment references a deleted template")
			return nil, nil, nil
		}

		return &assignments[i], template, nil
	}

	return nil, nil, nil
}

// GetRange returns the resolved assignments for days between start and end
// inclusive, date-ascending. Orphans are excluded.
func (s *AssignmentLedgerService) GetRange(start, end time.Time) ([]DayShift, error) {
	assignments, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	templates, err := s.catalog.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ShiftTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	lo := models.DayOf(start)
	hi := models.DayOf(end)

	result := make([]DayShift, 0)
	for _, a := range assignments {
		day := models.DayOf(a.Date)
		if day.Before(lo) || day.After(hi) {
			continue
		}
		template, ok := byID[a.ShiftID]
		if !ok {
			continue
		}
		result = append(result, DayShift{Date: day, Template: template})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	s.logger.WithFields(logrus.Fields{
		"start": models.DayKey(lo),
		"end":   models.DayKey(hi),
		"count": len(result),
	}).Debug("Retrieved assignments in range")

	return result, nil
}
