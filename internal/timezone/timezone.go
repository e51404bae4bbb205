package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "Europe/London"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Zone converts between stored instants and the company's civil time.
type Zone struct {
	loc *time.Location
}

func NewZone(tz string) *Zone {
	return &Zone{loc: Location(tz)}
}

func (z *Zone) Location() *time.Location {
	return z.loc
}

// ToLocal is for display only; storage always keeps UTC.
func (z *Zone) ToLocal(t time.Time) time.Time {
	return t.In(z.loc)
}

func (z *Zone) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// LocalDate builds a wall clock time in the zone. Inside a spring-forward gap
// the result is normalised forward by the length of the gap.
func (z *Zone) LocalDate(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, z.loc)
}

func (z *Zone) StartOfDay(t time.Time) time.Time {
	l := t.In(z.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, z.loc)
}

func (z *Zone) StartOfMonth(t time.Time) time.Time {
	l := t.In(z.loc)
	return time.Date(l.Year(), l.Month(), 1, 0, 0, 0, 0, z.loc)
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant reads an inbound timestamp. Strings carrying Z or an explicit
// offset are taken as is; anything else is local civil time in the zone.
func (z *Zone) ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, z.loc)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

// ParseDate reads a YYYY-MM-DD civil date as local midnight.
func (z *Zone) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), z.loc)
}
