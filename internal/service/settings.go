package service

import (
	"github.com/sirupsen/logrus"

	"shift-manager/internal/models"
	"shift-manager/internal/repository"
)

// SettingsService wraps the single-row settings store.
type SettingsService struct {
	repo   repository.SettingsRepository
	logger *logrus.Logger
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logrus.New(),
	}
}

func (s *SettingsService) Get() (*models.AppSettings, error) {
	return s.repo.Get()
}

func (s *SettingsService) SetCalendar(calendarID string) error {
	settings, err := s.repo.Get()
	if err != nil {
		return err
	}
	settings.SelectedCalendarID = calendarID
	s.logger.WithField("calendar_id", calendarID).Info("Selected calendar changed")
	return s.repo.Save(settings)
}

func (s *SettingsService) SetLanguage(language string) error {
	settings, err := s.repo.Get()
	if err != nil {
		return err
	}
	settings.Language = language
	s.logger.WithField("language", language).Info("Language changed")
	return s.repo.Save(settings)
}

func (s *SettingsService) SetNotifications(enabled bool, leadMinutes int) error {
	settings, err := s.repo.Get()
	if err != nil {
		return err
	}
	settings.NotificationsEnabled = enabled
	if leadMinutes > 0 {
		settings.NotificationLeadMin = leadMinutes
	}
	s.logger.WithFields(logrus.Fields{
		"enabled":      enabled,
		"lead_minutes": settings.NotificationLeadMin,
	}).Info("Notification settings changed")
	return s.repo.Save(settings)
}
