package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ldagroup/timetracking/internal/domain/attendance"
	"github.com/ldagroup/timetracking/internal/domain/costing"
	"github.com/ldagroup/timetracking/internal/domain/report"
	"github.com/ldagroup/timetracking/internal/models"
	"github.com/ldagroup/timetracking/internal/timezone"
)

var london = timezone.NewZone(timezone.DefaultTimezone)

func records(t *testing.T, f File) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(f.Data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func ptr[T any](v T) *T { return &v }

func sampleReport() costing.Report {
	in := time.Date(2024, 5, 8, 7, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	job := models.Job{ID: "j1", Name: "Kitchen Refit", Client: "Acme, Ltd", Location: "Leeds", QuotedCost: 5000}
	entries := []models.TimeEntry{
		{ID: "e1", WorkerID: "w1", JobID: "j1", ClockIn: in, ClockOut: &out, DurationMinutes: ptr(480), Notes: `said "hi"`},
		{ID: "e2", WorkerID: "w1", JobID: "j1", ClockIn: out},
	}
	mats := []models.Material{
		{Name: "Worktop", Cost: 200, Quantity: 2, PurchaseDate: in},
	}
	workers := []models.Worker{{ID: "w1", Name: "Sam", HourlyRate: 15}}
	return costing.Compute(job, entries, mats, workers)
}

func TestJobReport(t *testing.T) {
	f, err := NewFormatter(london).JobReport(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "job_report_Kitchen_Refit.csv", f.Name)
	assert.Equal(t, ContentTypeCSV, f.ContentType)

	rows := records(t, f)
	assert.Equal(t, []string{"JOB REPORT - Kitchen Refit"}, rows[0])
	assert.Equal(t, []string{"Client", "Acme, Ltd"}, rows[1])
	assert.Equal(t, []string{"Quoted Cost", "£5,000.00"}, rows[3])
	assert.Equal(t, []string{"Actual Cost", "£520.00"}, rows[4])
	assert.Equal(t, []string{"Variance", "£4,480.00"}, rows[5])

	// times are rendered in UK local time (BST in May)
	assert.Equal(t, []string{"Sam", "2024-05-08 08:00:00", "2024-05-08 16:00:00", "8", "£120.00", `said "hi"`}, rows[8])
	assert.Equal(t, "Active", rows[9][2])
	assert.Equal(t, []string{"TOTAL LABOR", "", "", "8", "£120.00", ""}, rows[10])
	assert.Equal(t, []string{"Worktop", "2", "£200.00", "£400.00", "2024-05-08", ""}, rows[13])
	assert.Equal(t, []string{"TOTAL MATERIALS", "", "", "£400.00", "", ""}, rows[14])

	assert.Contains(t, string(f.Data), "\"Acme, Ltd\"\r\n")
	assert.Contains(t, string(f.Data), `"said ""hi"""`)
}

func sampleEntryRows() []report.EntryRow {
	in := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	out := in.Add(90 * time.Minute)
	entries := []models.TimeEntry{
		{
			ID: "e1", WorkerID: "w1", JobID: "j1", ClockIn: in, ClockOut: &out, DurationMinutes: ptr(90),
			GPSLocationIn: &models.GPSLocation{Latitude: 53.8, Longitude: -1.55, Address: "Leeds"},
		},
		{ID: "e2", WorkerID: "w2", JobID: "j1", ClockIn: out},
	}
	return report.BuildEntryRows(entries,
		[]models.Worker{{ID: "w1", Name: "Sam", HourlyRate: 20}},
		[]models.Job{{ID: "j1", Name: "Roof"}},
	)
}

func TestTimeEntries(t *testing.T) {
	f, err := NewFormatter(london).TimeEntries(sampleEntryRows())
	require.NoError(t, err)

	rows := records(t, f)
	require.Len(t, rows, 4)
	assert.Equal(t, entryHeader, rows[0])
	assert.Equal(t, []string{
		"Sam", "Roof", "2024-01-15 08:00:00", "2024-01-15 09:30:00", "1.5", "£20.00", "£30.00", "",
		"53.8", "-1.55", "Leeds", "", "", "",
	}, rows[1])
	assert.Equal(t, []string{"Unknown", "Roof"}, rows[2][:2])
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "£15.00", rows[2][5])
	assert.Equal(t, "£0.00", rows[2][6])

	total := rows[3]
	require.Len(t, total, len(entryHeader))
	assert.Equal(t, "TOTAL", total[0])
	assert.Equal(t, "2 entries", total[1])
	assert.Equal(t, "1.5", total[4])
	assert.Equal(t, "£30.00", total[6])
}

func TestTimeEntriesXLSX(t *testing.T) {
	f, err := NewFormatter(london).TimeEntriesXLSX(sampleEntryRows())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, f.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer func() { _ = book.Close() }()

	rows, err := book.GetRows("Time Entries")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Worker Name", rows[0][0])
	assert.Equal(t, "Sam", rows[1][0])
	assert.Equal(t, "£30.00", rows[1][6])
	assert.Equal(t, "TOTAL", rows[4][0])
	assert.Equal(t, "£30.00", rows[4][6])
}

func TestMaterials(t *testing.T) {
	now := time.Date(2024, 5, 8, 17, 0, 0, 0, time.UTC)
	rows := []report.MaterialRow{
		{Date: time.Date(2024, 5, 7, 9, 30, 0, 0, time.UTC), JobName: "Roof", JobClient: "Acme",
			MaterialName: "Tiles", Supplier: "Jewson", Reference: "R1", Quantity: 40, Cost: 2.5, TotalValue: 100},
		{JobName: "Roof", MaterialName: "Felt", Quantity: 2, Cost: 30, TotalValue: 60},
	}

	f, err := NewFormatter(london).Materials(rows, now)
	require.NoError(t, err)
	assert.Equal(t, "materials_report_20240508.csv", f.Name)

	out := records(t, f)
	assert.Equal(t, []string{"MATERIALS REPORT", "Generated: 2024-05-08 18:00:00 UK Time"}, out[0])
	assert.Equal(t, "Date", out[1][0])
	assert.Equal(t, []string{"2024-05-07 10:30", "Roof", "Acme", "Tiles", "Jewson", "R1", "40", "£2.50", "£100.00", ""}, out[2])
	assert.Equal(t, "N/A", out[3][0])
	assert.Equal(t, []string{"Total Materials", "2"}, out[len(out)-2])
	assert.Equal(t, []string{"Total Value", "£160.00"}, out[len(out)-1])
}

func TestMaterialsEmpty(t *testing.T) {
	f, err := NewFormatter(london).Materials(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(f.Data), "No materials found for the selected criteria")
	assert.True(t, strings.HasSuffix(string(f.Data), "Total Value,£0.00\r\n"))
}

func TestAttendanceAlerts(t *testing.T) {
	loc := london.Location()
	tue := time.Date(2024, 5, 7, 0, 0, 0, 0, loc)
	wed := time.Date(2024, 5, 8, 0, 0, 0, 0, loc)
	late := time.Date(2024, 5, 8, 9, 20, 0, 0, loc)

	alerts := []attendance.Alert{
		{WorkerName: "Ali", Type: attendance.NoClockIn, Day: tue, Date: "2024-05-07", Message: "No clock in recorded on Tuesday, 07 May 2024"},
		{WorkerName: "Ali", WorkerEmail: "ali@example.com", Type: attendance.LateClockIn, Day: wed, Date: "2024-05-08", Time: &late, Message: "m"},
		{WorkerName: "Sam", Type: attendance.NoClockIn, Day: tue, Date: "2024-05-07", Message: "x"},
	}

	f, err := NewFormatter(london).AttendanceAlerts(alerts, wed.Add(18*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "attendance_alerts_20240508.csv", f.Name)

	rows := records(t, f)
	assert.Equal(t, "ATTENDANCE ALERTS - LAST 7 DAYS", rows[0][0])
	assert.Equal(t, []string{"Worker Name", "Worker Email", "Alert Type", "Date", "Day of Week", "Time", "Details"}, rows[1])
	assert.Equal(t, []string{"Ali", "ali@example.com", "Late Clock In", "2024-05-08", "Wednesday", "09:20", "m"}, rows[2])
	assert.Equal(t, "Sam", rows[3][0])
	assert.Equal(t, []string{"Ali", "", "No Clock In", "2024-05-07", "Tuesday", "N/A", "No clock in recorded on Tuesday, 07 May 2024"}, rows[4])
	assert.Equal(t, []string{"SUMMARY"}, rows[5])
	assert.Equal(t, []string{"Late Clock In", "1"}, rows[6])
	assert.Equal(t, []string{"No Clock In", "2"}, rows[7])
	assert.Equal(t, []string{"Total Alerts", "3"}, rows[8])
}
