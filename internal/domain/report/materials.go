package report

import (
	"sort"
	"strings"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
)

type MaterialRow struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	JobID        string    `json:"job_id"`
	JobName      string    `json:"job_name"`
	JobClient    string    `json:"job_client"`
	MaterialName string    `json:"material_name"`
	Supplier     string    `json:"supplier"`
	Reference    string    `json:"reference"`
	Quantity     int       `json:"quantity"`
	Cost         float64   `json:"cost"`
	TotalValue   float64   `json:"total_value"`
	Notes        string    `json:"notes"`
	Archived     bool      `json:"archived"`
}

type RowFilter struct {
	Client string
	JobID  string

	// WorkedOn reports whether the filtered worker logged time on a job.
	// Nil disables the worker filter.
	WorkedOn func(jobID string) (bool, error)
}

// BuildMaterialRows joins materials with their jobs, drops materials whose job
// is gone and applies the job level filters. Rows come back newest first.
func BuildMaterialRows(materials []models.Material, jobs []models.Job, f RowFilter) ([]MaterialRow, error) {
	lookup := make(map[string]models.Job, len(jobs))
	for _, j := range jobs {
		lookup[j.ID] = j
	}

	client := strings.ToLower(strings.TrimSpace(f.Client))
	worked := map[string]bool{}

	rows := []MaterialRow{}
	for _, m := range materials {
		job, ok := lookup[m.JobID]
		if !ok {
			continue
		}
		if client != "" && !strings.Contains(strings.ToLower(job.Client), client) {
			continue
		}
		if f.JobID != "" && job.ID != f.JobID {
			continue
		}
		if f.WorkedOn != nil {
			ok, seen := worked[job.ID]
			if !seen {
				var err error
				ok, err = f.WorkedOn(job.ID)
				if err != nil {
					return nil, err
				}
				worked[job.ID] = ok
			}
			if !ok {
				continue
			}
		}

		rows = append(rows, MaterialRow{
			ID:           m.ID,
			Date:         m.PurchaseDate,
			JobID:        job.ID,
			JobName:      job.Name,
			JobClient:    job.Client,
			MaterialName: m.Name,
			Supplier:     m.Supplier,
			Reference:    m.Reference,
			Quantity:     m.Quantity,
			Cost:         m.Cost,
			TotalValue:   m.TotalValue(),
			Notes:        m.Notes,
			Archived:     m.Archived,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})

	return rows, nil
}
