package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

type WorkerGormRepository struct {
	db *gorm.DB
}

func NewWorkerGormRepository(db *gorm.DB) *WorkerGormRepository {
	return &WorkerGormRepository{db: db}
}

func (r *WorkerGormRepository) FindAdminByEmail(ctx context.Context, email string) (*models.Worker, error) {
	var w models.Worker
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND role = ? AND active = ? AND archived = ?", email, models.RoleAdmin, true, false).
		First(&w).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Compile-time check
var _ auth.AdminLookup = (*WorkerGormRepository)(nil)
