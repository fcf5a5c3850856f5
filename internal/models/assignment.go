package models

import (
	"time"
)

type Assignment struct {
	ID      string    `gorm:"primarykey" json:"id"`
	ShiftID string    `gorm:"not null;index" json:"shift_id"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`

	// EventID links the assignment to the external calendar event that
	// realizes it. Weak reference: the event may be gone by the time the
	// assignment is read back.
	EventID string `json:"event_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) IsValid() bool {
	if a.ID == "" {
		return false
	}
	if a.ShiftID == "" {
		return false
	}
	if a.Date.IsZero() {
		return false
	}
	return true
}

// SameDay reports whether the assignment occupies the given date's
// calendar day.
func (a *Assignment) SameDay(date time.Time) bool {
	return DayKey(a.Date) == DayKey(date)
}

// DayOf truncates a timestamp to midnight of its calendar day, keeping
// the location. All day-level equality in the ledger goes through this.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey renders a timestamp as its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
