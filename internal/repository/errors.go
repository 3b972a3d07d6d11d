package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row or key does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when inserting a record whose id already exists.
	ErrConflict = errors.New("record already exists")
	// ErrContention is returned when an optimistic update keeps losing races.
	ErrContention = errors.New("too many concurrent writers")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
