package model

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the data-access layer. Controllers map these to
// transport status codes; nothing below the endpoints package touches HTTP.
var (
	// ErrNotFound means no row (or junction pair) matched the request.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("already exists")

	// ErrPersistence covers connectivity and constraint failures not
	// classified as NotFound or Conflict.
	ErrPersistence = errors.New("persistence failure")

	// ErrBadFilter means a filter referenced a column the entity's binding
	// does not declare as filterable.
	ErrBadFilter = errors.New("column is not filterable")
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// translateError classifies a driver error into the package taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Detail)
		}
		return fmt.Errorf("%w: %s", ErrPersistence, pqErr.Message)
	}

	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
