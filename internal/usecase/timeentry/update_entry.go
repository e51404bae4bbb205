package timeentry

import (
	"context"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/models"
)

type UpdateEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateEntry(repo domain.Repository, audit *audit.Dispatcher) *UpdateEntry {
	return &UpdateEntry{repo: repo, audit: audit}
}

func (uc *UpdateEntry) Execute(
	ctx context.Context,
	actor string,
	entryID string,
	patch domain.Patch,
) (*models.TimeEntry, error) {

	entry, err := uc.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if patch.WorkerID != nil && *patch.WorkerID != "" && *patch.WorkerID != entry.WorkerID {
		if _, err := uc.repo.GetWorker(ctx, *patch.WorkerID); err != nil {
			return nil, err
		}
	}
	if patch.JobID != nil && *patch.JobID != "" && *patch.JobID != entry.JobID {
		if _, err := uc.repo.GetJob(ctx, *patch.JobID); err != nil {
			return nil, err
		}
	}

	if err := domain.ApplyPatch(entry, patch); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "time_entry_updated",
		Entity:   "time_entry",
		EntityID: entry.ID,
	})

	return entry, nil
}
