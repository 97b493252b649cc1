package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// TranslateError maps a driver error onto the domain taxonomy. Foreign key
// violations become reference errors for (entity, id); check and type
// violations become validation errors; anything else is a store error.
func TranslateError(op string, err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgerrcode.ForeignKeyViolation:
			return domain.DanglingReference(entity, id)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return domain.InvalidCause(columnOf(pqErr), pqErr.Message, err)
		case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange:
			return domain.InvalidCause(columnOf(pqErr), pqErr.Message, err)
		}
	}

	return domain.Store(op, err)
}

// IsForeignKeyViolation reports whether err is SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.ForeignKeyViolation
}

func columnOf(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	if e.Constraint != "" {
		return e.Constraint
	}
	return "input"
}
