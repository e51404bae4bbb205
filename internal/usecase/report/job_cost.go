package report

import (
	"context"

	"github.com/ldagroup/timetracking/internal/domain/costing"
	domain "github.com/ldagroup/timetracking/internal/domain/report"
)

type JobCostReport struct {
	repo domain.Repository
}

func NewJobCostReport(repo domain.Repository) *JobCostReport {
	return &JobCostReport{repo: repo}
}

func (uc *JobCostReport) Execute(ctx context.Context, jobID string) (*costing.Report, error) {
	job, err := uc.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.ListJobEntries(ctx, jobID)
	if err != nil {
		return nil, err
	}

	materials, err := uc.repo.ListJobMaterials(ctx, jobID)
	if err != nil {
		return nil, err
	}

	workerIDs, _ := domain.ReferencedIDs(entries)
	workers, err := uc.repo.ListWorkersByIDs(ctx, workerIDs)
	if err != nil {
		return nil, err
	}

	r := costing.Compute(*job, entries, materials, workers)
	return &r, nil
}
