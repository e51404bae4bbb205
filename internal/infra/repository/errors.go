package repository

import (
	"github.com/ldagroup/timetracking/internal/httperr"
)

// notFound maps a missing record to the given not found code and passes
// any other error through.
func notFound(err error, code string) error {
	if httperr.IsRecordNotFound(err) {
		return httperr.ErrNotFound(code)
	}
	return err
}
