package timeentry

import (
	"context"

	"github.com/ldagroup/timetracking/internal/audit"
	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListEntries struct {
	repo domain.Repository
}

func NewListEntries(repo domain.Repository) *ListEntries {
	return &ListEntries{repo: repo}
}

func (uc *ListEntries) Execute(ctx context.Context, f domain.Filter) ([]models.TimeEntry, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrValidation("invalid_interval")
	}
	return uc.repo.ListEntries(ctx, f)
}

// ======================================================
// ACTIVE
// ======================================================

type GetActiveEntry struct {
	repo domain.Repository
}

func NewGetActiveEntry(repo domain.Repository) *GetActiveEntry {
	return &GetActiveEntry{repo: repo}
}

// Execute returns nil when the worker is not clocked in.
func (uc *GetActiveEntry) Execute(ctx context.Context, workerID string) (*models.TimeEntry, error) {
	return uc.repo.GetActiveEntry(ctx, workerID)
}

// ======================================================
// DELETE / ARCHIVE
// ======================================================

type RemoveEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveEntry(repo domain.Repository, audit *audit.Dispatcher) *RemoveEntry {
	return &RemoveEntry{repo: repo, audit: audit}
}

func (uc *RemoveEntry) Delete(ctx context.Context, actor, entryID string) error {
	ok, err := uc.repo.DeleteEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrNotFound("time_entry_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "time_entry_deleted",
		Entity:   "time_entry",
		EntityID: entryID,
	})
	return nil
}

func (uc *RemoveEntry) Archive(ctx context.Context, actor, entryID string) error {
	ok, err := uc.repo.ArchiveEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrNotFound("time_entry_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "time_entry_archived",
		Entity:   "time_entry",
		EntityID: entryID,
	})
	return nil
}
