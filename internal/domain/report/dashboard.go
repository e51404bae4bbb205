package report

import "github.com/ldagroup/timetracking/internal/domain/attendance"

type DashboardStats struct {
	TotalWorkers                int64              `json:"total_workers"`
	TotalJobs                   int64              `json:"total_jobs"`
	ActiveJobs                  int64              `json:"active_jobs"`
	TotalHoursThisWeek          float64            `json:"total_hours_this_week"`
	TotalMaterialsCostThisMonth float64            `json:"total_materials_cost_this_month"`
	AttendanceAlerts            []attendance.Alert `json:"attendance_alerts"`
}
