package handlers

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/middleware"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
	ucTimeEntry "github.com/ldagroup/timetracking/internal/usecase/timeentry"
)

// ======================================================
// HANDLER
// ======================================================

type TimeEntryHandler struct {
	clockIn  *ucTimeEntry.ClockIn
	clockOut *ucTimeEntry.ClockOut
	update   *ucTimeEntry.UpdateEntry
	list     *ucTimeEntry.ListEntries
	active   *ucTimeEntry.GetActiveEntry
	remove   *ucTimeEntry.RemoveEntry
	zone     *timezone.Zone
}

func NewTimeEntryHandler(
	clockIn *ucTimeEntry.ClockIn,
	clockOut *ucTimeEntry.ClockOut,
	update *ucTimeEntry.UpdateEntry,
	list *ucTimeEntry.ListEntries,
	active *ucTimeEntry.GetActiveEntry,
	remove *ucTimeEntry.RemoveEntry,
	zone *timezone.Zone,
) *TimeEntryHandler {
	return &TimeEntryHandler{
		clockIn:  clockIn,
		clockOut: clockOut,
		update:   update,
		list:     list,
		active:   active,
		remove:   remove,
		zone:     zone,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClockInRequest struct {
	WorkerID    string              `json:"worker_id" binding:"required"`
	JobID       string              `json:"job_id" binding:"required"`
	GPSLocation *models.GPSLocation `json:"gps_location"`
	Notes       string              `json:"notes"`
}

type ClockOutRequest struct {
	GPSLocation *models.GPSLocation `json:"gps_location"`
	Notes       *string             `json:"notes"`
}

// UpdateTimeEntryRequest: clock_out "" reopens the entry.
type UpdateTimeEntryRequest struct {
	WorkerID        *string `json:"worker_id"`
	JobID           *string `json:"job_id"`
	ClockIn         *string `json:"clock_in"`
	ClockOut        *string `json:"clock_out"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=0"`
	Notes           *string `json:"notes"`
}

func (r UpdateTimeEntryRequest) patch(zone *timezone.Zone) (domain.Patch, error) {
	p := domain.Patch{
		WorkerID:        r.WorkerID,
		JobID:           r.JobID,
		Notes:           r.Notes,
		DurationMinutes: r.DurationMinutes,
	}

	if r.ClockIn != nil && strings.TrimSpace(*r.ClockIn) != "" {
		t, err := zone.ParseInstant(*r.ClockIn)
		if err != nil {
			return domain.Patch{}, httperr.ErrValidation("invalid_date")
		}
		p.ClockIn = &t
	}

	if r.ClockOut != nil {
		if strings.TrimSpace(*r.ClockOut) == "" {
			p.ClockOut = &time.Time{}
		} else {
			t, err := zone.ParseInstant(*r.ClockOut)
			if err != nil {
				return domain.Patch{}, httperr.ErrValidation("invalid_date")
			}
			p.ClockOut = &t
		}
	}

	return p, nil
}

// ======================================================
// CLOCK IN / OUT
// ======================================================

func (h *TimeEntryHandler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, err := h.clockIn.Execute(c.Request.Context(), ucTimeEntry.ClockInInput{
		WorkerID: req.WorkerID,
		JobID:    req.JobID,
		GPS:      req.GPSLocation,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, entry)
}

func (h *TimeEntryHandler) ClockOut(c *gin.Context) {
	// the body is optional
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, err := h.clockOut.Execute(c.Request.Context(), ucTimeEntry.ClockOutInput{
		EntryID: c.Param("id"),
		GPS:     req.GPSLocation,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, entry)
}

// ======================================================
// ADMIN EDITS
// ======================================================

func (h *TimeEntryHandler) Update(c *gin.Context) {
	var req UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patch, err := req.patch(h.zone)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	entry, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), patch)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *TimeEntryHandler) Delete(c *gin.Context) {
	if err := h.remove.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Message(c, "Time entry deleted successfully")
}

func (h *TimeEntryHandler) Archive(c *gin.Context) {
	if err := h.remove.Archive(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.Message(c, "Time entry archived successfully")
}

// ======================================================
// QUERIES
// ======================================================

func (h *TimeEntryHandler) List(c *gin.Context) {
	from, to, err := instantRange(c, h.zone)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	entries, err := h.list.Execute(c.Request.Context(), domain.Filter{
		WorkerID: strings.TrimSpace(c.Query("worker_id")),
		JobID:    strings.TrimSpace(c.Query("job_id")),
		From:     from,
		To:       to,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	if entries == nil {
		entries = []models.TimeEntry{}
	}
	httpresp.OK(c, entries)
}

func (h *TimeEntryHandler) Active(c *gin.Context) {
	entry, err := h.active.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"active_entry": entry})
}
