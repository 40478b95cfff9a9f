package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes raised by the idx_active_slot guard.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsSlotConflict reports whether err came from the storage-level
// uniqueness guard on (worker_id, date, time) for active appointments.
// The constraint, not application sequencing, arbitrates concurrent
// bookings; this maps the loser's error to the 409 path.
func IsSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
