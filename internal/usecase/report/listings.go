package report

import (
	"context"
	"time"

	domain "github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
)

// ======================================================
// MATERIALS
// ======================================================

type MaterialsQuery struct {
	WorkerID string
	Supplier string
	Client   string
	JobID    string

	// The date range only applies when both ends are set.
	From *time.Time
	To   *time.Time
}

type MaterialsReport struct {
	repo domain.Repository
}

func NewMaterialsReport(repo domain.Repository) *MaterialsReport {
	return &MaterialsReport{repo: repo}
}

func (uc *MaterialsReport) Execute(ctx context.Context, q MaterialsQuery) ([]domain.MaterialRow, error) {
	f := domain.MaterialFilter{Supplier: q.Supplier}
	if q.From != nil && q.To != nil {
		if q.To.Before(*q.From) {
			return nil, httperr.ErrValidation("invalid_interval")
		}
		f.From, f.To = q.From, q.To
	}

	materials, err := uc.repo.ListMaterials(ctx, f)
	if err != nil {
		return nil, err
	}

	jobs, err := uc.repo.ListAllJobs(ctx)
	if err != nil {
		return nil, err
	}

	rf := domain.RowFilter{Client: q.Client, JobID: q.JobID}
	if q.WorkerID != "" {
		rf.WorkedOn = func(jobID string) (bool, error) {
			return uc.repo.WorkerHasEntriesOnJob(ctx, q.WorkerID, jobID)
		}
	}

	return domain.BuildMaterialRows(materials, jobs, rf)
}

// ======================================================
// TIME ENTRIES
// ======================================================

type TimeEntriesReport struct {
	repo domain.Repository
}

func NewTimeEntriesReport(repo domain.Repository) *TimeEntriesReport {
	return &TimeEntriesReport{repo: repo}
}

func (uc *TimeEntriesReport) Execute(ctx context.Context, f timeentry.Filter) ([]domain.EntryRow, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrValidation("invalid_interval")
	}

	entries, err := uc.repo.ListEntries(ctx, f)
	if err != nil {
		return nil, err
	}

	workerIDs, jobIDs := domain.ReferencedIDs(entries)
	workers, err := uc.repo.ListWorkersByIDs(ctx, workerIDs)
	if err != nil {
		return nil, err
	}
	jobs, err := uc.repo.ListJobsByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	return domain.BuildEntryRows(entries, workers, jobs), nil
}
