package models

import (
	"fmt"
	"time"
)

type ShiftTemplate struct {
	ID   string `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Start/end of the shift as minutes from midnight. The catalog does
	// not enforce start < end; overnight shifts are the caller's problem.
	StartMinute int `gorm:"not null;default:540" json:"start_minute"`
	EndMinute   int `gorm:"not null;default:1020" json:"end_minute"`

	Color      string `gorm:"not null;default:'#FF0000'" json:"color"`
	CalendarID string `json:"calendar_id"`
	AllDay     bool   `gorm:"not null;default:false" json:"all_day"`

	// Position preserves catalog insertion order across reloads.
	Position int `gorm:"not null;default:0;index" json:"position"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftTemplate) TableName() string {
	return "shift_templates"
}

// IsValid checks the template data. The only hard requirement is a
// present id; time ordering is deliberately unchecked.
func (t *ShiftTemplate) IsValid() bool {
	if t.ID == "" {
		return false
	}
	if t.StartMinute < 0 || t.StartMinute > 1440 {
		return false
	}
	if t.EndMinute < 0 || t.EndMinute > 1440 {
		return false
	}
	return true
}

// StartOn places the template's start time on the given calendar day.
func (t *ShiftTemplate) StartOn(day time.Time) time.Time {
	d := DayOf(day)
	return d.Add(time.Duration(t.StartMinute) * time.Minute)
}

// EndOn places the template's end time on the given calendar day.
func (t *ShiftTemplate) EndOn(day time.Time) time.Time {
	d := DayOf(day)
	return d.Add(time.Duration(t.EndMinute) * time.Minute)
}

// TimeRange returns the shift hours as "HH:MM - HH:MM", or "all day".
func (t *ShiftTemplate) TimeRange() string {
	if t.AllDay {
		return "all day"
	}
	return fmt.Sprintf("%02d:%02d - %02d:%02d",
		t.StartMinute/60, t.StartMinute%60,
		t.EndMinute/60, t.EndMinute%60)
}
