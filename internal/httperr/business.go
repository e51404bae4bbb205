package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

const pgUniqueViolation = "23505"

// IsUniqueViolation matches duplicate key errors from postgres, and from any
// dialect once gorm's TranslateError is enabled.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
