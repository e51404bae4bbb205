package models

import "time"

type Material struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	JobID     string  `gorm:"size:36;index;not null" json:"job_id"`
	Name      string  `gorm:"size:150;not null" json:"name"`
	Cost      float64 `json:"cost"`
	Quantity  int     `gorm:"default:1" json:"quantity"`
	Supplier  string  `gorm:"size:150" json:"supplier"`
	Reference string  `gorm:"size:100" json:"reference"`

	PurchaseDate time.Time `gorm:"index" json:"purchase_date"`
	Notes        string    `gorm:"type:text" json:"notes"`
	Archived     bool      `gorm:"default:false" json:"archived"`

	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m Material) TotalValue() float64 {
	return m.Cost * float64(m.Quantity)
}
