package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/ldagroup/timetracking/internal/domain/timeentry"
	"github.com/ldagroup/timetracking/internal/export"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/timezone"
	ucReport "github.com/ldagroup/timetracking/internal/usecase/report"
)

// ======================================================
// HANDLER
// ======================================================

type ReportHandler struct {
	dashboard *ucReport.Dashboard
	jobCost   *ucReport.JobCostReport
	materials *ucReport.MaterialsReport
	entries   *ucReport.TimeEntriesReport
	alerts    *ucReport.AttendanceAlerts

	formatter *export.Formatter
	zone      *timezone.Zone
	clock     timezone.Clock
}

func NewReportHandler(
	dashboard *ucReport.Dashboard,
	jobCost *ucReport.JobCostReport,
	materials *ucReport.MaterialsReport,
	entries *ucReport.TimeEntriesReport,
	alerts *ucReport.AttendanceAlerts,
	formatter *export.Formatter,
	zone *timezone.Zone,
	clock timezone.Clock,
) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		jobCost:   jobCost,
		materials: materials,
		entries:   entries,
		alerts:    alerts,
		formatter: formatter,
		zone:      zone,
		clock:     clock,
	}
}

// ======================================================
// HELPERS
// ======================================================

func (h *ReportHandler) materialsQuery(c *gin.Context) (ucReport.MaterialsQuery, error) {
	from, to, err := instantRange(c, h.zone)
	if err != nil {
		return ucReport.MaterialsQuery{}, err
	}

	return ucReport.MaterialsQuery{
		WorkerID: strings.TrimSpace(c.Query("worker_id")),
		Supplier: strings.TrimSpace(c.Query("supplier")),
		Client:   strings.TrimSpace(c.Query("client")),
		JobID:    strings.TrimSpace(c.Query("job_id")),
		From:     from,
		To:       to,
	}, nil
}

func sendFile(c *gin.Context, f export.File, err error) {
	if err != nil {
		httperr.Internal(c, "export_failed", "Failed to generate export.")
		return
	}
	httpresp.Attachment(c, f.Name, f.ContentType, f.Data)
}

// ======================================================
// JSON REPORTS
// ======================================================

func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *ReportHandler) JobCosts(c *gin.Context) {
	report, err := h.jobCost.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, report)
}

func (h *ReportHandler) Materials(c *gin.Context) {
	q, err := h.materialsQuery(c)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	rows, err := h.materials.Execute(c.Request.Context(), q)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *ReportHandler) AttendanceAlerts(c *gin.Context) {
	alerts, _, err := h.alerts.Execute(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.List(c, alerts)
}

// ======================================================
// EXPORTS
// ======================================================

func (h *ReportHandler) ExportJob(c *gin.Context) {
	report, err := h.jobCost.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	f, err := h.formatter.JobReport(*report)
	sendFile(c, f, err)
}

func (h *ReportHandler) ExportTimeEntries(c *gin.Context) {
	from, to, err := instantRange(c, h.zone)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	rows, err := h.entries.Execute(c.Request.Context(), domain.Filter{
		WorkerID: strings.TrimSpace(c.Query("worker_id")),
		JobID:    strings.TrimSpace(c.Query("job_id")),
		From:     from,
		To:       to,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "xlsx":
		f, err := h.formatter.TimeEntriesXLSX(rows)
		sendFile(c, f, err)
	case "csv":
		f, err := h.formatter.TimeEntries(rows)
		sendFile(c, f, err)
	default:
		httperr.BadRequest(c, "invalid_format", "Format must be csv or xlsx.")
	}
}

func (h *ReportHandler) ExportMaterials(c *gin.Context) {
	q, err := h.materialsQuery(c)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	rows, err := h.materials.Execute(c.Request.Context(), q)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	f, err := h.formatter.Materials(rows, h.clock.Now())
	sendFile(c, f, err)
}

func (h *ReportHandler) ExportAttendanceAlerts(c *gin.Context) {
	alerts, now, err := h.alerts.Execute(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	f, err := h.formatter.AttendanceAlerts(alerts, now)
	sendFile(c, f, err)
}
