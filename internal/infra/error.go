package infra

import (
	"errors"
	"log/slog"

	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	// KindInvalidData is a row the schema refused, such as an unknown status.
	KindInvalidData RepositoryErrorKind = "INVALID_DATA"
)

// RepositoryError is what every repository and read store returns on failure.
type RepositoryError struct {
	Kind RepositoryErrorKind
	// Constraint names the violated constraint when postgres reported one.
	Constraint string
	msg        string
	err        error
}

func (e RepositoryError) Error() string {
	s := string(e.Kind) + ": " + e.msg
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err by its postgres cause unless an explicit kind is given.
// Only unexpected database failures are logged.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k, constraint := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}
	if k == KindDBFailure {
		slog.Error("repository error", slog.String("op", msg), slog.Any("error", err))
	}
	return RepositoryError{Kind: k, Constraint: constraint, msg: msg, err: errs.Wrap(err, msg)}
}

func classify(err error) (RepositoryErrorKind, string) {
	if err == nil {
		return KindDBFailure, ""
	}
	if pgconv.IsNoRows(err) {
		return KindNotFound, ""
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure, ""
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return KindDuplicateKey, pgErr.ConstraintName
	case pgErrForeignKeyViolation:
		return KindForeignKeyViolated, pgErr.ConstraintName
	case pgErrCheckViolation, pgErrInvalidTextRepr:
		return KindInvalidData, pgErr.ConstraintName
	case pgErrSerializationFailure, pgErrDeadlockDetected:
		return KindConflict, ""
	}
	return KindDBFailure, ""
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errors.As(err, &e) && e.Kind == kind
}

const (
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrCheckViolation       = "23514"
	pgErrInvalidTextRepr      = "22P02"
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)
