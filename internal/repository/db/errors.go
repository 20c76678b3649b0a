package db

import (
	"errors"
	"fmt"
)

// Common database errors
var (
	ErrNoRecord            = errors.New("no matching record found")
	ErrDuplicate           = errors.New("record already exists")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrBusy                = errors.New("database is busy")
)

// DuplicateError names the unique column that rejected a write / Nomme la colonne unique qui a rejeté l'écriture
type DuplicateError struct {
	Table  string
	Column string
	Value  any
}

func (e *DuplicateError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", e.Table, ErrDuplicate)
	}
	return fmt.Sprintf("%s with %s %q already exists", e.Table, e.Column, fmt.Sprint(e.Value))
}

// Unwrap lets errors.Is match ErrDuplicate / Permet à errors.Is de reconnaître ErrDuplicate
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}
