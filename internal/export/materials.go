package export

import (
	"strconv"
	"time"

	"github.com/ldagroup/timetracking/internal/domain/report"
)

func (f *Formatter) generated(now time.Time) string {
	return "Generated: " + f.zone.ToLocal(now).Format(dateTimeLayout) + " UK Time"
}

func (f *Formatter) Materials(rows []report.MaterialRow, now time.Time) (File, error) {
	s := newSheet()

	s.row("MATERIALS REPORT", f.generated(now))
	s.blank()

	var total float64
	if len(rows) == 0 {
		s.row("No materials found for the selected criteria")
	} else {
		s.row("Date", "Job", "Client", "Material", "Supplier", "Receipt No",
			"Quantity", "Unit Cost", "Total Value", "Notes")
		for _, r := range rows {
			date := "N/A"
			if !r.Date.IsZero() {
				date = f.zone.ToLocal(r.Date).Format("2006-01-02 15:04")
			}
			s.row(
				date,
				r.JobName,
				r.JobClient,
				r.MaterialName,
				r.Supplier,
				r.Reference,
				strconv.Itoa(r.Quantity),
				money(r.Cost),
				money(r.TotalValue),
				r.Notes,
			)
			total += r.TotalValue
		}
	}

	s.blank()
	s.row("SUMMARY")
	s.blank()
	s.row("Total Materials", strconv.Itoa(len(rows)))
	s.row("Total Value", money(total))

	return s.file("materials_report_" + f.zone.ToLocal(now).Format("20060102") + ".csv")
}
