package costing

import (
	"math"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
)

const UnknownWorker = "Unknown"

type EntryLine struct {
	ID              string              `json:"id"`
	WorkerID        string              `json:"worker_id"`
	WorkerName      string              `json:"worker_name"`
	ClockIn         time.Time           `json:"clock_in"`
	ClockOut        *time.Time          `json:"clock_out"`
	DurationMinutes *int                `json:"duration_minutes"`
	Notes           string              `json:"notes"`
	GPSLocationIn   *models.GPSLocation `json:"gps_location_in"`
	GPSLocationOut  *models.GPSLocation `json:"gps_location_out"`
	HourlyRate      float64             `json:"hourly_rate"`
	LaborCost       float64             `json:"labor_cost"`
}

// Hours is the line duration rounded to two places, zero while open.
func (l EntryLine) Hours() float64 {
	if l.DurationMinutes == nil {
		return 0
	}
	return round(float64(*l.DurationMinutes)/60, 2)
}

type Report struct {
	Job              models.Job        `json:"job"`
	TotalHours       float64           `json:"total_hours"`
	LaborCost        float64           `json:"labor_cost"`
	MaterialsCost    float64           `json:"materials_cost"`
	TotalCost        float64           `json:"total_cost"`
	QuotedCost       float64           `json:"quoted_cost"`
	CostVariance     float64           `json:"cost_variance"`
	TimeEntries      []EntryLine       `json:"time_entries"`
	Materials        []models.Material `json:"materials"`
	TimeEntriesCount int               `json:"time_entries_count"`
	MaterialsCount   int               `json:"materials_count"`
}

// Rates indexes hourly rates and names by worker id.
type Rates struct {
	rates map[string]float64
	names map[string]string
}

func NewRates(workers []models.Worker) Rates {
	r := Rates{
		rates: make(map[string]float64, len(workers)),
		names: make(map[string]string, len(workers)),
	}
	for _, w := range workers {
		r.rates[w.ID] = w.HourlyRate
		r.names[w.ID] = w.Name
	}
	return r
}

func (r Rates) Rate(workerID string) float64 {
	if rate, ok := r.rates[workerID]; ok {
		return rate
	}
	return models.DefaultHourlyRate
}

func (r Rates) Name(workerID string) string {
	if name, ok := r.names[workerID]; ok {
		return name
	}
	return UnknownWorker
}

// Compute builds the job cost report from already fetched records. Open
// entries count towards TimeEntriesCount but not towards labour.
// Variance is quoted minus actual: positive means under budget.
func Compute(
	job models.Job,
	entries []models.TimeEntry,
	materials []models.Material,
	workers []models.Worker,
) Report {
	rates := NewRates(workers)

	var totalMinutes int
	var labor float64
	lines := make([]EntryLine, 0, len(entries))

	for _, e := range entries {
		line := Line(e, rates)
		if e.DurationMinutes != nil {
			totalMinutes += *e.DurationMinutes
			labor += line.LaborCost
		}
		lines = append(lines, line)
	}

	materialsCost := MaterialsCost(materials)
	total := labor + materialsCost

	if materials == nil {
		materials = []models.Material{}
	}

	return Report{
		Job:              job,
		TotalHours:       round(float64(totalMinutes)/60, 1),
		LaborCost:        labor,
		MaterialsCost:    materialsCost,
		TotalCost:        total,
		QuotedCost:       job.QuotedCost,
		CostVariance:     job.QuotedCost - total,
		TimeEntries:      lines,
		Materials:        materials,
		TimeEntriesCount: len(entries),
		MaterialsCount:   len(materials),
	}
}

// Line costs a single entry. Open entries have no labour cost.
func Line(e models.TimeEntry, rates Rates) EntryLine {
	rate := rates.Rate(e.WorkerID)
	line := EntryLine{
		ID:              e.ID,
		WorkerID:        e.WorkerID,
		WorkerName:      rates.Name(e.WorkerID),
		ClockIn:         e.ClockIn,
		ClockOut:        e.ClockOut,
		DurationMinutes: e.DurationMinutes,
		Notes:           e.Notes,
		GPSLocationIn:   e.GPSLocationIn,
		GPSLocationOut:  e.GPSLocationOut,
		HourlyRate:      rate,
	}
	if e.DurationMinutes != nil {
		line.LaborCost = float64(*e.DurationMinutes) / 60 * rate
	}
	return line
}

func MaterialsCost(materials []models.Material) float64 {
	var sum float64
	for _, m := range materials {
		sum += m.TotalValue()
	}
	return sum
}

// TotalHours sums known durations and rounds to one decimal place.
func TotalHours(entries []models.TimeEntry) float64 {
	var minutes int
	for _, e := range entries {
		if e.DurationMinutes != nil {
			minutes += *e.DurationMinutes
		}
	}
	return round(float64(minutes)/60, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
