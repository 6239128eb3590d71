package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Typed failures returned by repositories and services. Handlers map
// these to HTTP statuses with errors.Is; nothing below the handler
// layer swallows them.
var (
	ErrDuplicateReview = errors.New("review already exists for this subject")
	ErrReviewNotFound  = errors.New("review not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrUnauthorized    = errors.New("not allowed to perform this action")
	ErrInvalidRating   = errors.New("rating must be between 0 and 10")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isPgError reports whether err carries the given Postgres error code.
// The unique constraints on (user_id, subject) and (user_id, review_id)
// are the backstop for the check-then-act races; constraint violations
// are translated to the taxonomy above instead of surfacing raw.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
