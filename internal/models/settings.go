package models

import (
	"time"
)

// Language codes supported by the message table.
const (
	LanguageEnglish = "en"
	LanguageDutch   = "nl"
)

// Default notification lead time, in minutes.
const DefaultNotificationLead = 30

type AppSettings struct {
	ID                   uint   `gorm:"primarykey" json:"id"`
	SelectedCalendarID   string `json:"selected_calendar_id"`
	NotificationsEnabled bool   `gorm:"not null;default:true" json:"notifications_enabled"`
	NotificationLeadMin  int    `gorm:"not null;default:30" json:"notification_lead_min"`
	Language             string `gorm:"not null;default:'en'" json:"language"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSettings) TableName() string {
	return "app_settings"
}

// DefaultSettings returns the settings used before the user stores any.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		NotificationsEnabled: true,
		NotificationLeadMin:  DefaultNotificationLead,
		Language:             LanguageEnglish,
	}
}

func (s *AppSettings) IsValid() bool {
	if s.Language != LanguageEnglish && s.Language != LanguageDutch {
		return false
	}
	if s.NotificationLeadMin < 0 || s.NotificationLeadMin > 1440 {
		return false
	}
	return true
}
