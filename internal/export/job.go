package export

import (
	"strings"

	"github.com/ldagroup/timetracking/internal/domain/costing"
)

// JobReport renders the job summary, its time entries and its materials.
func (f *Formatter) JobReport(r costing.Report) (File, error) {
	s := newSheet()

	s.row("JOB REPORT - " + r.Job.Name)
	s.row("Client", r.Job.Client)
	s.row("Location", r.Job.Location)
	s.row("Quoted Cost", f.groupedMoney(r.QuotedCost))
	s.row("Actual Cost", f.groupedMoney(r.TotalCost))
	s.row("Variance", f.groupedMoney(r.CostVariance))
	s.blank()

	s.row("TIME ENTRIES")
	s.row("Worker", "Clock In", "Clock Out", "Duration (hours)", "Labor Cost", "Notes")
	for _, l := range r.TimeEntries {
		out := "Active"
		if l.ClockOut != nil {
			out = f.dateTime(*l.ClockOut)
		}
		s.row(
			l.WorkerName,
			f.dateTime(l.ClockIn),
			out,
			number(l.Hours()),
			money(l.LaborCost),
			l.Notes,
		)
	}
	s.blank()
	s.row("TOTAL LABOR", "", "", number(r.TotalHours), money(r.LaborCost), "")
	s.blank()

	s.row("MATERIALS")
	s.row("Material", "Quantity", "Unit Cost", "Total Cost", "Purchase Date", "Notes")
	for _, m := range r.Materials {
		s.row(
			m.Name,
			number(float64(m.Quantity)),
			money(m.Cost),
			money(m.TotalValue()),
			f.date(m.PurchaseDate),
			m.Notes,
		)
	}
	s.blank()
	s.row("TOTAL MATERIALS", "", "", money(r.MaterialsCost), "", "")

	return s.file("job_report_" + fileSafe(r.Job.Name) + ".csv")
}

func fileSafe(name string) string {
	if name == "" {
		return "unknown"
	}
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "\"", "")
	return r.Replace(name)
}
