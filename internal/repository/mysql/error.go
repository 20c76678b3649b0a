package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/go-sql-driver/mysql"
)

var ErrNoRecord = db.ErrNoRecord // Re-export from db package

// MySQL server error numbers / Numéros d'erreur du serveur MySQL
const (
	erDupEntry        = 1062
	erRowIsReferenced = 1451
	erNoReferencedRow = 1452
	erCheckConstraint = 3819
	erDataTooLong     = 1406
	erLockWaitTimeout = 1205
)

// handleError translates MySQL errors to typed errors / Traduit les erreurs MySQL en erreurs typées
func handleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRecord
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case erDupEntry:
			return db.ErrDuplicate
		case erRowIsReferenced, erNoReferencedRow:
			return db.ErrForeignKeyViolation
		case erCheckConstraint:
			return db.ErrCheckViolation
		case erDataTooLong:
			return fmt.Errorf("%w: %s", db.ErrCheckViolation, mysqlErr.Message)
		case erLockWaitTimeout:
			return db.ErrBusy
		}
	}
	return err
}
