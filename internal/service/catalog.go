package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"shift-manager/internal/models"
	"shift-manager/internal/repository"
)

// ShiftCatalogService owns the set of shift templates. Every mutation
// persists the full collection synchronously.
type ShiftCatalogService struct {
	repo   repository.ShiftTemplateRepository
	logger *logrus.Logger
}

func NewShiftCatalogService(repo repository.ShiftTemplateRepository) *ShiftCatalogService {
	return &ShiftCatalogService{
		repo:   repo,
		logger: logrus.New(),
	}
}

// List returns all templates in insertion order.
func (s *ShiftCatalogService) List() ([]models.ShiftTemplate, error) {
	s.logger.Debug("Listing shift templates")
	return s.repo.GetAll()
}

// GetByID returns the template with the given id, or nil when absent.
func (s *ShiftCatalogService) GetByID(id string) (*models.ShiftTemplate, error) {
	return s.repo.GetByID(id)
}

// Add appends a template to the catalog and persists the collection.
func (s *ShiftCatalogService) Add(template models.ShiftTemplate) error {
	s.logger.WithFields(logrus.Fields{
		"id":   template.ID,
		"name": template.Name,
	}).Info("Adding shift template")

	if template.ID == "" {
		return errors.New("shift template id is required")
	}

	templates, err := s.repo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load templates before add")
		return err
	}

	template.Position = len(templates)
	templates = append(templates, template)

	return s.repo.ReplaceAll(templates)
}

// Update replaces the template matching by id. No-op when the id is absent.
func (s *ShiftCatalogService) Update(template models.ShiftTemplate) error {
	s.logger.WithFields(logrus.Fields{
		"id":   template.ID,
		"name": template.Name,
	}).Info("Updating shift template")

	if template.ID == "" {
		return errors.New("shift template id is required")
	}

	templates, err := s.repo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load templates before update")
		return err
	}

	for i := range templates {
		if templates[i].ID == template.ID {
			template.Position = templates[i].Position
			templates[i] = template
			return s.repo.ReplaceAll(templates)
		}
	}

	s.logger.WithField("id", template.ID).Warn("Shift template not found for update")
	return nil
}

// Delete removes all templates matching the id and persists the collection.
// Assignments referencing the template are not touched here; they become
// orphans and drop out of ledger range queries.
func (s *ShiftCatalogService) Delete(templateID string) error {
	s.logger.WithField("id", templateID).Info("Deleting shift template")

	templates, err := s.repo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load templates before delete")
		return err
	}

	kept := make([]models.ShiftTemplate, 0, len(templates))
	for _, t := range templates {
		if t.ID == templateID {
			continue
		}
		kept = append(kept, t)
	}

	if len(kept) == len(templates) {
		s.logger.WithField("id", templateID).Warn("Shift template not found for deletion")
	}

	for i := range kept {
		kept[i].Position = i
	}

	return s.repo.ReplaceAll(kept)
}

// FormatList renders the catalog as a numbered list for display.
func (s *ShiftCatalogService) FormatList(templates []models.ShiftTemplate) string {
	if len(templates) == 0 {
		return ""
	}

	var result strings.Builder
	for i, t := range templates {
		result.WriteString(fmt.Sprintf("%d. %s (%s) %s\n", i+1, t.Name, t.TimeRange(), t.Color))
	}
	return result.String()
}
