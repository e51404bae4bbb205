package timeentry

import (
	"context"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ClockInInput struct {
	WorkerID string
	JobID    string
	GPS      *models.GPSLocation
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type ClockIn struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewClockIn(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *ClockIn {
	return &ClockIn{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ClockIn) Execute(ctx context.Context, in ClockInInput) (*models.TimeEntry, error) {
	if _, err := uc.repo.GetWorker(ctx, in.WorkerID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetJob(ctx, in.JobID); err != nil {
		return nil, err
	}

	// The open entry check lives in the store: two concurrent clock ins for
	// the same worker cannot both succeed.
	entry := domain.Open(in.WorkerID, in.JobID, uc.clock.Now(), in.GPS, in.Notes)
	if err := uc.repo.CreateOpenEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.WorkerID,
		Action:   "clock_in",
		Entity:   "time_entry",
		EntityID: entry.ID,
		Metadata: map[string]string{"job_id": in.JobID},
	})

	return entry, nil
}
