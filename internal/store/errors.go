package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound marks operations against records that don't exist where the
// absence is structural (e.g. returns against a missing checkout). Cosmetic
// lookups use the (nil, nil) convention instead.
var ErrNotFound = errors.New("not found")

// ValidationError is a domain rule rejection the caller can correct and
// resubmit. Everything else coming out of this package is a storage
// failure and is propagated unchanged.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a domain validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// queryer and execer are satisfied by both *sql.DB and *sql.Tx, so reads
// like the outstanding-quantity computation can run inside a write
// transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
