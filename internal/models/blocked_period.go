package models

import "time"

// BlockedPeriod is an administrator-defined exclusion interval (holiday,
// office closure). It applies to every provider; no two blocked periods may
// overlap each other.
type BlockedPeriod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string    `gorm:"size:100;not null" json:"name"`
	Start time.Time `gorm:"column:start_time;index;not null" json:"start"`
	End   time.Time `gorm:"column:end_time;not null" json:"end"`
	Notes string    `gorm:"size:1024" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
