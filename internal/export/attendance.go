package export

import (
	"sort"
	"strconv"
	"time"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
)

var alertOrder = []attendance.AlertType{
	attendance.LateClockIn,
	attendance.LateClockOut,
	attendance.NoClockIn,
}

// AttendanceAlerts sorts by date then worker name, both descending.
func (f *Formatter) AttendanceAlerts(alerts []attendance.Alert, now time.Time) (File, error) {
	sorted := make([]attendance.Alert, len(alerts))
	copy(sorted, alerts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].WorkerName > sorted[j].WorkerName
	})

	s := newSheet()
	s.row("ATTENDANCE ALERTS - LAST 7 DAYS", f.generated(now))
	s.blank()
	s.row("Worker Name", "Worker Email", "Alert Type", "Date", "Day of Week", "Time", "Details")

	counts := map[attendance.AlertType]int{}
	for _, a := range sorted {
		at := "N/A"
		if a.Time != nil {
			at = f.zone.ToLocal(*a.Time).Format("15:04")
		}
		s.row(
			a.WorkerName,
			a.WorkerEmail,
			a.Type.Label(),
			a.Date,
			a.Day.Weekday().String(),
			at,
			a.Message,
		)
		counts[a.Type]++
	}

	s.blank()
	s.row("SUMMARY")
	s.blank()
	for _, typ := range alertOrder {
		if n := counts[typ]; n > 0 {
			s.row(typ.Label(), strconv.Itoa(n))
		}
	}
	s.blank()
	s.row("Total Alerts", strconv.Itoa(len(sorted)))

	return s.file("attendance_alerts_" + f.zone.ToLocal(now).Format("20060102") + ".csv")
}
