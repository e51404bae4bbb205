package timeentry

import (
	"time"

	"github.com/ldagroup/timetracking/internal/httperr"
)

var ErrInvalidInterval = httperr.ErrValidation("invalid_interval")

// DurationMinutes returns the whole minutes elapsed between two instants.
// It works on absolute time so midnight and DST changes do not matter.
func DurationMinutes(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidInterval
	}
	return int(end.Sub(start) / time.Minute), nil
}
