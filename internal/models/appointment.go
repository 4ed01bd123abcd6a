package models

import "time"

// Appointment is either a customer booking or, when IsUnavailability is set,
// a provider-side busy block with no customer and no service.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookTime time.Time `json:"book_time"`
	Start    time.Time `gorm:"column:start_time;index;not null" json:"start"`
	End      time.Time `gorm:"column:end_time;not null" json:"end"`

	Location string `gorm:"size:255" json:"location,omitempty"`
	Notes    string `gorm:"size:1024" json:"notes,omitempty"`
	Color    string `gorm:"size:16" json:"color,omitempty"`

	// Hash is the opaque booking token handed out in confirmation links.
	// Never exposed through list/detail payloads.
	Hash string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	// Status is empty for unavailability blocks (see schedule.StatusNone).
	Status string `gorm:"size:20" json:"status,omitempty"`

	IsUnavailability bool `gorm:"index" json:"is_unavailability"`

	ProviderID uint `gorm:"index;not null" json:"provider_id"`
	Provider   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider"`

	CustomerID *uint `json:"customer_id,omitempty"`
	Customer   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	ServiceID *uint    `json:"service_id,omitempty"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	GoogleCalendarID string `gorm:"size:128" json:"google_calendar_id,omitempty"`
	CaldavCalendarID string `gorm:"size:128" json:"caldav_calendar_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
