package repository

import (
	"errors"
	"shift-manager/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShiftTemplateRepository interface {
	GetAll() ([]models.ShiftTemplate, error)
	GetByID(id string) (*models.ShiftTemplate, error)
	ReplaceAll(templates []models.ShiftTemplate) error
}

type GormShiftTemplateRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftTemplateRepository(db *gorm.DB) (*GormShiftTemplateRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.ShiftTemplate{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_templates table")
		return nil, err
	}

	logger.Info("Shift template repository initialized")

	return &GormShiftTemplateRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormShiftTemplateRepository) GetAll() ([]models.ShiftTemplate, error) {
	var templates []models.ShiftTemplate
	result := r.db.Order("position ASC").Find(&templates)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift templates")
		return nil, result.Error
	}

	r.logger.WithField("count", len(templates)).Debug("Retrieved shift templates")
	return templates, nil
}

func (r *GormShiftTemplateRepository) GetByID(id string) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	result := r.db.Where("id = ?", id).First(&template)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift template not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift template by ID")
		return nil, result.Error
	}

	return &template, nil
}

// ReplaceAll persists the full catalog in one transaction. The catalog
// keeps whole-collection overwrite semantics rather than per-row updates.
func (r *GormShiftTemplateRepository) ReplaceAll(templates []models.ShiftTemplate) error {
	r.logger.WithField("count", len(templates)).Info("Replacing shift template collection")

	for i := range templates {
		if !templates[i].IsValid() {
			r.logger.WithField("id", templates[i].ID).Warn("Invalid shift template data")
			return errors.New("invalid shift template data")
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ShiftTemplate{}).Error; err != nil {
			return err
		}
		if len(templates) == 0 {
			return nil
		}
		return tx.Create(&templates).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to replace shift template collection")
		return err
	}

	r.logger.WithField("count", len(templates)).Info("Shift template collection replaced")
	return nil
}
