package models

import "time"

type GPSLocation struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// TimeEntry with a nil ClockOut is open: the worker is still on the clock.
// The store keeps at most one open entry per worker (see db.Migrate).
type TimeEntry struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	WorkerID string `gorm:"size:36;index;not null" json:"worker_id"`
	JobID    string `gorm:"size:36;index;not null" json:"job_id"`

	ClockIn         time.Time  `gorm:"index;not null" json:"clock_in"`
	ClockOut        *time.Time `json:"clock_out"`
	DurationMinutes *int       `json:"duration_minutes"`

	GPSLocationIn  *GPSLocation `gorm:"type:text;serializer:json" json:"gps_location_in"`
	GPSLocationOut *GPSLocation `gorm:"type:text;serializer:json" json:"gps_location_out"`

	Notes    string `gorm:"type:text" json:"notes"`
	Archived bool   `gorm:"default:false" json:"archived"`

	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}
