package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the reservation path cares about. 23P01 fires when
// the exclusion constraint on overlapping reservation windows rejects an
// insert that slipped past the row lock.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
