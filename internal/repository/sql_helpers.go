package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	campus_errors "campushub/pkg/errors"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// storageErr tags a database failure so callers can tell it apart from
// validation outcomes.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", campus_errors.ErrStorage, err)
}
