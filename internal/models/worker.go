package models

import "time"

const (
	RoleWorker     = "worker"
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

const DefaultHourlyRate = 15.0

type Worker struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;index" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:20;default:'worker'" json:"role"`

	HourlyRate   float64 `gorm:"default:15" json:"hourly_rate"`
	PasswordHash string  `gorm:"size:255" json:"-"`

	Active   bool `json:"active"`
	Archived bool `gorm:"default:false" json:"archived"`

	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the worker can log in to the admin area.
func (w Worker) IsAdmin() bool {
	return w.Role == RoleAdmin && w.PasswordHash != ""
}
