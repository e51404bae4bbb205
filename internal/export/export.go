package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ldagroup/timetracking/internal/timezone"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// File is a rendered export ready to be streamed as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Formatter renders already aggregated data. Timestamps are shown in the
// formatter's zone.
type Formatter struct {
	zone    *timezone.Zone
	printer *message.Printer
}

func NewFormatter(zone *timezone.Zone) *Formatter {
	return &Formatter{
		zone:    zone,
		printer: message.NewPrinter(language.BritishEnglish),
	}
}

// ===============================
// Cell helpers
// ===============================

func money(v float64) string {
	return fmt.Sprintf("£%.2f", v)
}

// groupedMoney renders thousands separators, e.g. £12,345.60.
func (f *Formatter) groupedMoney(v float64) string {
	return f.printer.Sprintf("£%.2f", v)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *Formatter) dateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return f.zone.ToLocal(t).Format(dateTimeLayout)
}

func (f *Formatter) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return f.zone.ToLocal(t).Format(dateLayout)
}

// ===============================
// CSV sheet
// ===============================

type sheet struct {
	buf bytes.Buffer
	w   *csv.Writer
}

func newSheet() *sheet {
	s := &sheet{}
	s.w = csv.NewWriter(&s.buf)
	s.w.UseCRLF = true
	return s
}

func (s *sheet) row(cells ...string) {
	// bytes.Buffer writes cannot fail; the error surfaces from Flush.
	_ = s.w.Write(cells)
}

func (s *sheet) blank() {
	s.row()
}

func (s *sheet) file(name string) (File, error) {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return File{}, err
	}
	return File{Name: name, ContentType: ContentTypeCSV, Data: s.buf.Bytes()}, nil
}
