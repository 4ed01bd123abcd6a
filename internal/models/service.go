package models

import "time"

const (
	AvailabilitiesTypeFlexible = "flexible"
	AvailabilitiesTypeFixed    = "fixed"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description,omitempty"`
	Duration    int     `gorm:"not null" json:"duration"`
	Price       float64 `json:"price"`
	Currency    string  `gorm:"size:8" json:"currency,omitempty"`
	Color       string  `gorm:"size:16" json:"color,omitempty"`

	// AttendantsNumber is the maximum simultaneous bookings for one slot.
	// Tracked and validated; the availability verdict still treats any
	// overlap as a conflict.
	AttendantsNumber int `gorm:"default:1" json:"attendants_number"`

	IsPrivate          bool   `gorm:"default:false" json:"is_private"`
	AvailabilitiesType string `gorm:"size:20;default:'flexible'" json:"availabilities_type"`

	Providers []User `gorm:"many2many:service_providers;" json:"providers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
