package errors

// Postgres-specific helpers mapping pgx errors to project ErrorCodes and retry semantics

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrNotNullViolation    = "23502"
	pgErrCheckViolation      = "23514"
	pgErrSerializationFail   = "40001"
	pgErrDeadlockDetected    = "40P01"
	pgErrLockNotAvailable    = "55P03"
	pgErrCannotConnectNow    = "57P03"
	pgErrInvalidTextRepr     = "22P02"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation, pgErrInvalidTextRepr:
		return ErrorCodeValidation, true
	case pgErrCannotConnectNow:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromDB wraps a database error with the mapped project code
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(Root(err)); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports whether a retry of the failed statement may succeed
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return false
	}
	switch {
	case IsSQLState(err, pgErrSerializationFail),
		IsSQLState(err, pgErrDeadlockDetected),
		IsSQLState(err, pgErrLockNotAvailable),
		IsSQLState(err, pgErrCannotConnectNow):
		return true
	}
	return false
}
