package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/lib/pq"
)

var ErrNoRecord = db.ErrNoRecord // Re-export from db package

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRecord
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return db.ErrDuplicate
		case "23503": // foreign_key_violation
			return db.ErrForeignKeyViolation
		case "23514", "23502": // check_violation, not_null_violation
			return db.ErrCheckViolation
		case "22001": // string_data_right_truncation
			return fmt.Errorf("%w: %s", db.ErrCheckViolation, pqErr.Message)
		case "40P01", "55P03": // deadlock_detected, lock_not_available
			return db.ErrBusy
		}
	}
	return err
}
