package repository

import (
	"errors"
	"shift-manager/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	GetAll() ([]models.Assignment, error)
	ReplaceAll(assignments []models.Assignment) error
}

type GormAssignmentRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAssignmentRepository(db *gorm.DB) (*GormAssignmentRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Assignment{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate assignments table")
		return nil, err
	}

	logger.Info("Assignment repository initialized")

	return &GormAssignmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormAssignmentRepository) GetAll() ([]models.Assignment, error) {
	var assignments []models.Assignment
	result := r.db.Order("date ASC").Find(&assignments)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get assignments")
		return nil, result.Error
	}

	r.logger.WithField("count", len(assignments)).Debug("Retrieved assignments")
	return assignments, nil
}

// ReplaceAll overwrites the whole ledger in one transaction. The ledger is
// a mirror of calendar state; it is rebuilt wholesale, never diffed.
func (r *GormAssignmentRepository) ReplaceAll(assignments []models.Assignment) error {
	r.logger.WithField("count", len(assignments)).Info("Replacing assignment ledger")

	seen := make(map[string]bool, len(assignments))
	for i := range assignments {
		if !assignments[i].IsValid() {
			r.logger.WithField("id", assignments[i].ID).Warn("Invalid assignment data")
			return errors.New("invalid assignment data")
		}
		key := models.DayKey(assignments[i].Date)
		if seen[key] {
			r.logger.WithField("date", key).Warn("Duplicate assignment date in ledger")
			return errors.New("more than one assignment for the same day")
		}
		seen[key] = true
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to replace assignment ledger")
		return err
	}

	r.logger.WithField("count", len(assignments)).Info("Assignment ledger replaced")
	return nil
}
