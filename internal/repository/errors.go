package repository

import "github.com/Olprog59/go-fromagerie/internal/repository/db"

// Re-export store errors so callers need not import the db package
var (
	ErrNoRecord            = db.ErrNoRecord
	ErrDuplicate           = db.ErrDuplicate
	ErrForeignKeyViolation = db.ErrForeignKeyViolation
	ErrCheckViolation      = db.ErrCheckViolation
)

// DuplicateError names the column holding a conflicting value / Nomme la colonne en conflit
type DuplicateError = db.DuplicateError
