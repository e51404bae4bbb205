package models

import "time"

const (
	JobStatusActive    = "active"
	JobStatusCompleted = "completed"
	JobStatusCancelled = "cancelled"
)

type Job struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:150;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"size:255" json:"location"`
	Client      string  `gorm:"size:150" json:"client"`
	QuotedCost  float64 `json:"quoted_cost"`
	Status      string  `gorm:"size:20;default:'active'" json:"status"`
	Archived    bool    `gorm:"default:false" json:"archived"`

	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_at"`
}
