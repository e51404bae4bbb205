package export

import (
	"bytes"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ldagroup/timetracking/internal/domain/report"
)

var entryHeader = []string{
	"Worker Name", "Job Name", "Clock In", "Clock Out",
	"Duration (hours)", "Hourly Rate", "Labor Cost", "Notes",
	"GPS In Lat", "GPS In Lng", "GPS In Address",
	"GPS Out Lat", "GPS Out Lng", "GPS Out Address",
}

func (f *Formatter) entryCells(r report.EntryRow) []string {
	out := ""
	if r.ClockOut != nil {
		out = f.dateTime(*r.ClockOut)
	}
	hours := ""
	if r.DurationMinutes != nil {
		hours = number(r.Hours())
	}

	cells := []string{
		r.WorkerName,
		r.JobName,
		f.dateTime(r.ClockIn),
		out,
		hours,
		money(r.HourlyRate),
		money(r.LaborCost),
		r.Notes,
	}

	if g := r.GPSLocationIn; g != nil {
		cells = append(cells, number(g.Latitude), number(g.Longitude), g.Address)
	} else {
		cells = append(cells, "", "", "")
	}
	if g := r.GPSLocationOut; g != nil {
		cells = append(cells, number(g.Latitude), number(g.Longitude), g.Address)
	} else {
		cells = append(cells, "", "", "")
	}
	return cells
}

// totalCells lines the summary up under the duration and labor columns.
func totalCells(t report.EntryTotals) []string {
	cells := make([]string, len(entryHeader))
	cells[0] = "TOTAL"
	cells[1] = strconv.Itoa(t.Entries) + " entries"
	cells[4] = number(t.Hours)
	cells[6] = money(t.LaborCost)
	return cells
}

func (f *Formatter) TimeEntries(rows []report.EntryRow) (File, error) {
	s := newSheet()
	s.row(entryHeader...)
	for _, r := range rows {
		s.row(f.entryCells(r)...)
	}
	s.blank()
	s.row(totalCells(report.SumEntryRows(rows))...)
	return s.file("time_entries.csv")
}

// TimeEntriesXLSX renders the same table as TimeEntries as a workbook.
func (f *Formatter) TimeEntriesXLSX(rows []report.EntryRow) (File, error) {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	const sheetName = "Time Entries"
	if err := book.SetSheetName(book.GetSheetName(0), sheetName); err != nil {
		return File{}, err
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return File{}, err
	}

	if err := setRow(book, sheetName, 1, entryHeader); err != nil {
		return File{}, err
	}
	if err := book.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return File{}, err
	}

	for i, r := range rows {
		if err := setRow(book, sheetName, i+2, f.entryCells(r)); err != nil {
			return File{}, err
		}
	}

	totalRow := len(rows) + 3
	if err := setRow(book, sheetName, totalRow, totalCells(report.SumEntryRows(rows))); err != nil {
		return File{}, err
	}
	if err := book.SetRowStyle(sheetName, totalRow, totalRow, bold); err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		return File{}, err
	}
	return File{Name: "time_entries.xlsx", ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}

func setRow(book *excelize.File, sheetName string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return book.SetSheetRow(sheetName, cell, &values)
}
