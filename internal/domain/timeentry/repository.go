package timeentry

import (
	"context"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
)

type Filter struct {
	WorkerID string
	JobID    string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- References --------
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)

	// -------- Entries --------

	// CreateOpenEntry must fail with a conflict when the worker already has
	// an open entry. Implementations rely on a store constraint, not a read.
	CreateOpenEntry(ctx context.Context, e *models.TimeEntry) error

	GetEntry(ctx context.Context, id string) (*models.TimeEntry, error)

	// GetActiveEntry returns nil, nil when the worker is not clocked in.
	GetActiveEntry(ctx context.Context, workerID string) (*models.TimeEntry, error)

	// CloseEntry only updates the row while it is still open and reports
	// false when nothing matched.
	CloseEntry(ctx context.Context, e *models.TimeEntry) (bool, error)

	SaveEntry(ctx context.Context, e *models.TimeEntry) error
	ListEntries(ctx context.Context, f Filter) ([]models.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) (bool, error)
	ArchiveEntry(ctx context.Context, id string) (bool, error)
}
