package models

import "time"

// Role slugs used across the API.
const (
	RoleAdmin     = "admin"
	RoleProvider  = "provider"
	RoleCustomer  = "customer"
	RoleSecretary = "secretary"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"size:20;uniqueIndex;not null" json:"slug"`

	// Coarse permission flags; fine-grained checks stay in the handlers.
	ApptsGranted    bool `gorm:"default:false" json:"appts_granted"`
	ServicesGranted bool `gorm:"default:false" json:"services_granted"`
	UsersGranted    bool `gorm:"default:false" json:"users_granted"`
	SystemGranted   bool `gorm:"default:false" json:"system_granted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoleID uint `gorm:"index;not null" json:"role_id"`
	Role   Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`

	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Address      string `gorm:"size:255" json:"address,omitempty"`
	Timezone     string `gorm:"size:64" json:"timezone,omitempty"`
	Notes        string `gorm:"size:1024" json:"notes,omitempty"`

	// Services this user offers when holding the provider role.
	Services []Service `gorm:"many2many:service_providers;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
