package report

import (
	"math"

	"github.com/ldagroup/timetracking/internal/domain/costing"
	"github.com/ldagroup/timetracking/internal/models"
)

const unknownJob = "Unknown"

// EntryRow is a costed time entry with its job name, used by the time entry
// export.
type EntryRow struct {
	costing.EntryLine
	JobID   string `json:"job_id"`
	JobName string `json:"job_name"`
}

func BuildEntryRows(entries []models.TimeEntry, workers []models.Worker, jobs []models.Job) []EntryRow {
	rates := costing.NewRates(workers)
	names := make(map[string]string, len(jobs))
	for _, j := range jobs {
		names[j.ID] = j.Name
	}

	rows := make([]EntryRow, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.JobID]
		if !ok {
			name = unknownJob
		}
		rows = append(rows, EntryRow{
			EntryLine: costing.Line(e, rates),
			JobID:     e.JobID,
			JobName:   name,
		})
	}
	return rows
}

// ReferencedIDs returns the distinct worker and job ids of entries.
func ReferencedIDs(entries []models.TimeEntry) (workerIDs, jobIDs []string) {
	seenW := map[string]bool{}
	seenJ := map[string]bool{}
	for _, e := range entries {
		if !seenW[e.WorkerID] {
			seenW[e.WorkerID] = true
			workerIDs = append(workerIDs, e.WorkerID)
		}
		if !seenJ[e.JobID] {
			seenJ[e.JobID] = true
			jobIDs = append(jobIDs, e.JobID)
		}
	}
	return workerIDs, jobIDs
}

// EntryTotals is the summary line of an entries export.
type EntryTotals struct {
	Entries   int
	Hours     float64
	LaborCost float64
}

// SumEntryRows totals rows. Open entries are counted but add no hours or cost.
func SumEntryRows(rows []EntryRow) EntryTotals {
	t := EntryTotals{Entries: len(rows)}
	var minutes int
	for _, r := range rows {
		if r.DurationMinutes != nil {
			minutes += *r.DurationMinutes
		}
		t.LaborCost += r.LaborCost
	}
	t.Hours = math.Round(float64(minutes)/60*10) / 10
	t.LaborCost = math.Round(t.LaborCost*100) / 100
	return t
}
