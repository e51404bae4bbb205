package models

import "time"

type AuditLog struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Actor  string `gorm:"size:100" json:"actor"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:36" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
