package timeentry

import (
	"context"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

type ClockOutInput struct {
	EntryID string
	GPS     *models.GPSLocation
	Notes   *string
}

type ClockOut struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewClockOut(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *ClockOut {
	return &ClockOut{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *ClockOut) Execute(ctx context.Context, in ClockOutInput) (*models.TimeEntry, error) {
	entry, err := uc.repo.GetEntry(ctx, in.EntryID)
	if err != nil {
		return nil, err
	}

	notes := entry.Notes
	if in.Notes != nil {
		notes = *in.Notes
	}

	if err := domain.Close(entry, uc.clock.Now(), in.GPS, notes); err != nil {
		return nil, err
	}

	// Conditional update: a concurrent clock out that got there first
	// leaves nothing to match.
	ok, err := uc.repo.CloseEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrNotFound("active_entry_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    entry.WorkerID,
		Action:   "clock_out",
		Entity:   "time_entry",
		EntityID: entry.ID,
		Metadata: map[string]int{"duration_minutes": *entry.DurationMinutes},
	})

	return entry, nil
}
