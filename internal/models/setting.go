package models

import "time"

// Setting is a single name/value configuration row (company timezone,
// minimum appointment duration, ...). Reads go through settings.Service,
// which keeps a redis cache in front of this table.
type Setting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Value string `gorm:"size:512" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting names.
const (
	SettingCompanyTimezone        = "company_timezone"
	SettingMinimumDurationMinutes = "appointment_minimum_duration"
)
