package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAccountNotFound indicates no row exists for the requested ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccount indicates the database rejected the row's data.
	ErrInvalidAccount = errors.New("invalid account data")
)

// isDataError reports whether err is a PostgreSQL data exception (class 22)
// or integrity constraint violation (class 23).
func isDataError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	class := pqErr.Code.Class()
	return class == "22" || class == "23"
}

// numericOutOfRange is SQLSTATE 22003. The only numeric column is the int4 id,
// so it means the id looked up cannot have been assigned.
const numericOutOfRange pq.ErrorCode = "22003"

func isIDOutOfRange(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == numericOutOfRange
}
