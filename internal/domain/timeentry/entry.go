package timeentry

import (
	"time"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Open(workerID, jobID string, at time.Time, gps *models.GPSLocation, notes string) *models.TimeEntry {
	return &models.TimeEntry{
		WorkerID:      workerID,
		JobID:         jobID,
		ClockIn:       at.UTC(),
		GPSLocationIn: gps,
		Notes:         notes,
	}
}

func Close(e *models.TimeEntry, at time.Time, gps *models.GPSLocation, notes string) error {
	if !e.IsOpen() {
		return httperr.ErrNotFound("active_entry_not_found")
	}

	minutes, err := DurationMinutes(e.ClockIn, at)
	if err != nil {
		return err
	}

	out := at.UTC()
	e.ClockOut = &out
	e.DurationMinutes = &minutes
	e.GPSLocationOut = gps
	e.Notes = notes
	return nil
}

// Patch is an admin edit. ClockOut set to a pointer to the zero time means
// "reopen the entry".
type Patch struct {
	WorkerID        *string
	JobID           *string
	ClockIn         *time.Time
	ClockOut        *time.Time
	Notes           *string
	DurationMinutes *int
}

// ApplyPatch mutates e. An explicit DurationMinutes always wins over the
// value computed from the clock times.
func ApplyPatch(e *models.TimeEntry, p Patch) error {
	timesChanged := false

	if p.WorkerID != nil && *p.WorkerID != "" {
		e.WorkerID = *p.WorkerID
	}
	if p.JobID != nil && *p.JobID != "" {
		e.JobID = *p.JobID
	}
	if p.ClockIn != nil {
		e.ClockIn = p.ClockIn.UTC()
		timesChanged = true
	}
	if p.ClockOut != nil {
		if p.ClockOut.IsZero() {
			e.ClockOut = nil
			e.DurationMinutes = nil
		} else {
			out := p.ClockOut.UTC()
			e.ClockOut = &out
		}
		timesChanged = true
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}

	if p.DurationMinutes != nil {
		d := *p.DurationMinutes
		e.DurationMinutes = &d
		return nil
	}

	if timesChanged && e.ClockOut != nil {
		minutes, err := DurationMinutes(e.ClockIn, *e.ClockOut)
		if err != nil {
			return err
		}
		e.DurationMinutes = &minutes
	}

	return nil
}
