package report

import (
	"context"
	"time"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
	"github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/models"
)

// MaterialFilter holds the store side filters. Client and worker filters
// need the job lookup and are applied in BuildMaterialRows.
type MaterialFilter struct {
	Supplier string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	attendance.Repository

	// -------- Dashboard counters --------
	CountActiveWorkers(ctx context.Context) (int64, error)
	CountOpenJobs(ctx context.Context) (int64, error)
	CountActiveJobs(ctx context.Context) (int64, error)
	ListCompletedEntriesSince(ctx context.Context, since time.Time) ([]models.TimeEntry, error)
	// ListMaterialsPurchasedSince includes archived materials.
	ListMaterialsPurchasedSince(ctx context.Context, since time.Time) ([]models.Material, error)

	// -------- Job costs --------
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobEntries(ctx context.Context, jobID string) ([]models.TimeEntry, error)
	ListJobMaterials(ctx context.Context, jobID string) ([]models.Material, error)
	ListWorkersByIDs(ctx context.Context, ids []string) ([]models.Worker, error)
	ListJobsByIDs(ctx context.Context, ids []string) ([]models.Job, error)

	// -------- Listings --------
	ListEntries(ctx context.Context, f timeentry.Filter) ([]models.TimeEntry, error)
	ListMaterials(ctx context.Context, f MaterialFilter) ([]models.Material, error)
	ListAllJobs(ctx context.Context) ([]models.Job, error)
	WorkerHasEntriesOnJob(ctx context.Context, workerID, jobID string) (bool, error)
}
