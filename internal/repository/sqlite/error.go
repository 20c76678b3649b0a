package sqlite

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNoRecord = db.ErrNoRecord                   // Re-export from db package
	ErrLocked   = errors.New("database is locked") // Database locked / Base de données verrouillée
)

// handleError translates DB errors to typed errors / Traduit les erreurs DB en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRecord
	}
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return err
	}
	code := liteErr.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return db.ErrDuplicate
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return db.ErrForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return db.ErrCheckViolation
	case sqlite3.SQLITE_BUSY:
		slog.Warn("database is busy", "error", liteErr.Error())
		return db.ErrBusy
	case sqlite3.SQLITE_LOCKED:
		slog.Warn("database is locked", "error", liteErr.Error())
		return ErrLocked
	}
	slog.Debug("unmapped sqlite error", "code", code, "error", liteErr.Error())
	return err
}
