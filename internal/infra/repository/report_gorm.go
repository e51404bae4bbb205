package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
	domain "github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/models"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// --------------------------------------------------
// Attendance
// --------------------------------------------------

func (r *ReportGormRepository) ListEligibleWorkers(ctx context.Context) ([]models.Worker, error) {
	workers := []models.Worker{}
	err := r.db.WithContext(ctx).
		Where("active = ? AND archived = ? AND role <> ?", true, false, models.RoleAdmin).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *ReportGormRepository) ListWorkerEntries(
	ctx context.Context,
	workerID string,
	from time.Time,
	to time.Time,
) ([]models.TimeEntry, error) {

	entries := []models.TimeEntry{}
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND clock_in >= ? AND clock_in < ?", workerID, from.UTC(), to.UTC()).
		Order("clock_in ASC").
		Find(&entries).Error
	return entries, err
}

// --------------------------------------------------
// Dashboard counters
// --------------------------------------------------

func (r *ReportGormRepository) count(ctx context.Context, model any, query string, args ...any) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

func (r *ReportGormRepository) CountActiveWorkers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Worker{}, "active = ? AND archived = ?", true, false)
}

func (r *ReportGormRepository) CountOpenJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Job{}, "status <> ? AND archived = ?", models.JobStatusCancelled, false)
}

func (r *ReportGormRepository) CountActiveJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Job{}, "status = ? AND archived = ?", models.JobStatusActive, false)
}

func (r *ReportGormRepository) ListCompletedEntriesSince(ctx context.Context, since time.Time) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	err := r.db.WithContext(ctx).
		Where("clock_in >= ? AND duration_minutes IS NOT NULL", since.UTC()).
		Find(&entries).Error
	return entries, err
}

func (r *ReportGormRepository) ListMaterialsPurchasedSince(ctx context.Context, since time.Time) ([]models.Material, error) {
	materials := []models.Material{}
	err := r.db.WithContext(ctx).
		Where("purchase_date >= ?", since.UTC()).
		Find(&materials).Error
	return materials, err
}

// --------------------------------------------------
// Job costs
// --------------------------------------------------

func (r *ReportGormRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "job_not_found")
	}
	return &j, nil
}

func (r *ReportGormRepository) ListJobEntries(ctx context.Context, jobID string) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("clock_in ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ReportGormRepository) ListJobMaterials(ctx context.Context, jobID string) ([]models.Material, error) {
	materials := []models.Material{}
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("purchase_date ASC").
		Find(&materials).Error
	return materials, err
}

func (r *ReportGormRepository) ListWorkersByIDs(ctx context.Context, ids []string) ([]models.Worker, error) {
	workers := []models.Worker{}
	if len(ids) == 0 {
		return workers, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&workers).Error
	return workers, err
}

func (r *ReportGormRepository) ListJobsByIDs(ctx context.Context, ids []string) ([]models.Job, error) {
	jobs := []models.Job{}
	if len(ids) == 0 {
		return jobs, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, err
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *ReportGormRepository) ListEntries(ctx context.Context, f timeentry.Filter) ([]models.TimeEntry, error) {
	return listEntries(r.db.WithContext(ctx), f)
}

func (r *ReportGormRepository) ListMaterials(ctx context.Context, f domain.MaterialFilter) ([]models.Material, error) {
	q := r.db.WithContext(ctx).Where("archived = ?", false)
	if s := strings.TrimSpace(f.Supplier); s != "" {
		q = q.Where("LOWER(supplier) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.From != nil && f.To != nil {
		q = q.Where("purchase_date >= ? AND purchase_date <= ?", f.From.UTC(), f.To.UTC())
	}

	materials := []models.Material{}
	err := q.Find(&materials).Error
	return materials, err
}

func (r *ReportGormRepository) ListAllJobs(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	err := r.db.WithContext(ctx).Find(&jobs).Error
	return jobs, err
}

func (r *ReportGormRepository) WorkerHasEntriesOnJob(ctx context.Context, workerID, jobID string) (bool, error) {
	n, err := r.count(ctx, &models.TimeEntry{}, "worker_id = ? AND job_id = ?", workerID, jobID)
	return n > 0, err
}

// Compile-time checks
var (
	_ domain.Repository     = (*ReportGormRepository)(nil)
	_ attendance.Repository = (*ReportGormRepository)(nil)
)
