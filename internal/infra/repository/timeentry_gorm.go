package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

type TimeEntryGormRepository struct {
	db *gorm.DB
}

func NewTimeEntryGormRepository(db *gorm.DB) *TimeEntryGormRepository {
	return &TimeEntryGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *TimeEntryGormRepository) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "worker_not_found")
	}
	return &w, nil
}

func (r *TimeEntryGormRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "job_not_found")
	}
	return &j, nil
}

// --------------------------------------------------
// Entries
// --------------------------------------------------

func (r *TimeEntryGormRepository) CreateOpenEntry(ctx context.Context, e *models.TimeEntry) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("already_clocked_in")
	}
	return err
}

func (r *TimeEntryGormRepository) GetEntry(ctx context.Context, id string) (*models.TimeEntry, error) {
	var e models.TimeEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "time_entry_not_found")
	}
	return &e, nil
}

func (r *TimeEntryGormRepository) GetActiveEntry(ctx context.Context, workerID string) (*models.TimeEntry, error) {
	var e models.TimeEntry
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND clock_out IS NULL", workerID).
		First(&e).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryGormRepository) CloseEntry(ctx context.Context, e *models.TimeEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(e).
		Where("clock_out IS NULL").
		Select("clock_out", "duration_minutes", "gps_location_out", "notes", "updated_at").
		Updates(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SaveEntry writes every column. Reopening an entry while the worker has
// another open one hits the partial unique index.
func (r *TimeEntryGormRepository) SaveEntry(ctx context.Context, e *models.TimeEntry) error {
	err := r.db.WithContext(ctx).Save(e).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("already_clocked_in")
	}
	return err
}

func (r *TimeEntryGormRepository) ListEntries(ctx context.Context, f domain.Filter) ([]models.TimeEntry, error) {
	return listEntries(r.db.WithContext(ctx), f)
}

func (r *TimeEntryGormRepository) DeleteEntry(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.TimeEntry{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *TimeEntryGormRepository) ArchiveEntry(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Where("id = ?", id).
		Update("archived", true)
	return res.RowsAffected > 0, res.Error
}

// listEntries filters on clock_in, both bounds inclusive, newest first.
func listEntries(db *gorm.DB, f domain.Filter) ([]models.TimeEntry, error) {
	q := db.Model(&models.TimeEntry{})
	if f.WorkerID != "" {
		q = q.Where("worker_id = ?", f.WorkerID)
	}
	if f.JobID != "" {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.From != nil {
		q = q.Where("clock_in >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("clock_in <= ?", f.To.UTC())
	}

	entries := []models.TimeEntry{}
	if err := q.Order("clock_in DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Compile-time check
var _ domain.Repository = (*TimeEntryGormRepository)(nil)
