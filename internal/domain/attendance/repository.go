package attendance

import (
	"context"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
)

type Repository interface {
	// ListEligibleWorkers returns active, non-archived, non-admin workers.
	ListEligibleWorkers(ctx context.Context) ([]models.Worker, error)

	// ListWorkerEntries returns entries with clock_in in [from, to).
	ListWorkerEntries(
		ctx context.Context,
		workerID string,
		from time.Time,
		to time.Time,
	) ([]models.TimeEntry, error)
}
