package repository

import (
	"errors"
	"shift-manager/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
}

type GormSettingsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSettingsRepository(db *gorm.DB) (*GormSettingsRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AppSettings{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate app_settings table")
		return nil, err
	}

	logger.Info("Settings repository initialized")

	return &GormSettingsRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Get returns the stored settings, or defaults when nothing was saved yet.
func (r *GormSettingsRepository) Get() (*models.AppSettings, error) {
	var settings models.AppSettings
	result := r.db.First(&settings)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.Debug("No stored settings, using defaults")
		return models.DefaultSettings(), nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get settings")
		return nil, result.Error
	}

	return &settings, nil
}

func (r *GormSettingsRepository) Save(settings *models.AppSettings) error {
	if !settings.IsValid() {
		r.logger.WithField("language", settings.Language).Warn("Invalid settings data")
		return errors.New("invalid settings data")
	}

	// Single-row table: keep whatever row exists and overwrite it.
	var existing models.AppSettings
	result := r.db.First(&existing)
	if result.Error == nil {
		settings.ID = existing.ID
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithError(result.Error).Error("Failed to read settings before save")
		return result.Error
	}

	if err := r.db.Save(settings).Error; err != nil {
		r.logger.WithError(err).Error("Failed to save settings")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"calendar_id": settings.SelectedCalendarID,
		"language":    settings.Language,
	}).Info("Settings saved")

	return nil
}
