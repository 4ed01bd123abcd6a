package models

import (
	"strings"
	"time"
)

// WebhookEndpoint is an administrator-registered destination for outbound
// event notifications. Actions is a comma-separated list of subscribed
// actions, e.g. "appointment_created,appointment_cancelled".
type WebhookEndpoint struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	URL           string `gorm:"size:512;not null" json:"url"`
	Secret        string `gorm:"size:128" json:"-"`
	Actions       string `gorm:"size:512" json:"actions"`
	IsSslVerified bool   `gorm:"default:true" json:"is_ssl_verified"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	Notes         string `gorm:"size:1024" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscribesTo reports whether the endpoint listens for the given action.
// An empty Actions list means "everything".
func (w *WebhookEndpoint) SubscribesTo(action string) bool {
	if strings.TrimSpace(w.Actions) == "" {
		return true
	}
	for _, a := range strings.Split(w.Actions, ",") {
		if strings.TrimSpace(a) == action {
			return true
		}
	}
	return false
}

// WebhookDelivery records one delivery attempt against an endpoint.
type WebhookDelivery struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EndpointID uint   `gorm:"index;not null" json:"endpoint_id"`
	EventID    string `gorm:"size:64" json:"event_id"`
	Action     string `gorm:"size:50;not null" json:"action"`
	Payload    string `gorm:"type:text" json:"payload"`
	StatusCode int    `json:"status_code"`
	Error      string `gorm:"size:512" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
