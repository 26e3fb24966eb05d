package rowgateway

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// StorageFailure reports that the store rejected or could not run a
// statement. It carries the driver error untouched.
type StorageFailure struct {
	// Op names the gateway step that failed.
	Op string
	// Err is the driver error.
	Err error
}

func (f *StorageFailure) Error() string {
	return fmt.Sprintf("storage failure (%s): %v", f.Op, f.Err)
}

func (f *StorageFailure) Unwrap() error { return f.Err }

// Code returns the PostgreSQL SQLSTATE of the underlying error, or "" when
// the driver did not supply one.
func (f *StorageFailure) Code() string {
	var pgErr *pgconn.PgError
	if errors.As(f.Err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsStorageFailure reports whether err is, or wraps, a *StorageFailure.
func IsStorageFailure(err error) bool {
	var f *StorageFailure
	return errors.As(err, &f)
}

func fail(op string, err error) error {
	return &StorageFailure{Op: op, Err: err}
}
