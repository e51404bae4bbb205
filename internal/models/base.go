package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	newID(&w.ID)
	return nil
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	newID(&j.ID)
	return nil
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	newID(&e.ID)
	return nil
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	newID(&q.ID)
	return nil
}

func (p *QuotePhoto) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}
