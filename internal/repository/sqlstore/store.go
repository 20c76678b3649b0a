// Package sqlstore implements the single-table CRUD contract on top of sqlx
// Implémente le contrat CRUD mono-table au-dessus de sqlx
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Olprog59/go-fromagerie/internal/ports"
	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/jmoiron/sqlx"
)

// Dialect holds what differs between database engines / Contient ce qui diffère entre moteurs
type Dialect struct {
	Name string
	// Returning is true when INSERT ... RETURNING yields the generated key
	Returning bool
	// Translate maps driver errors onto the db package errors
	Translate func(error) error
}

// Unique describes a column that must hold distinct values / Décrit une colonne à valeurs distinctes
type Unique[T any] struct {
	Column string
	// Value returns nil to skip the check (NULL is never a duplicate)
	Value func(*T) any
}

// Table maps an entity onto its table / Associe une entité à sa table
type Table[T any, K comparable] struct {
	Name    string
	Key     string
	Columns []string // writable columns, key excluded
	Values  func(*T) []any
	KeyOf   func(*T) K
	// SetKey stores the generated key; nil when the caller supplies the key
	SetKey func(*T, int64)
	Unique []Unique[T]
}

// Store is a generic repository over one table / Repository générique sur une table
type Store[T any, K comparable] struct {
	db      *sqlx.DB
	dialect Dialect
	table   Table[T, K]

	selectCols string
}

// New creates a store / Crée un store
func New[T any, K comparable](database *sqlx.DB, dialect Dialect, table Table[T, K]) *Store[T, K] {
	return &Store[T, K]{
		db:         database,
		dialect:    dialect,
		table:      table,
		selectCols: strings.Join(append([]string{table.Key}, table.Columns...), ", "),
	}
}

// List returns every row ordered by key / Retourne toutes les lignes triées par clé
func (s *Store[T, K]) List(ctx context.Context) ([]*T, error) {
	rows := make([]*T, 0)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", s.selectCols, s.table.Name, s.table.Key)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, s.wrap("list", err)
	}
	return rows, nil
}

// GetByID retrieves one row / Récupère une ligne
func (s *Store[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	row, err := s.get(ctx, s.db, id)
	if err != nil {
		return nil, s.wrap("get", err)
	}
	return row, nil
}

// Create inserts entity and returns the stored row / Insère entity et retourne la ligne stockée
func (s *Store[T, K]) Create(ctx context.Context, entity *T) (*T, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, s.wrap("begin", err)
	}
	defer tx.Rollback()

	if err := s.checkUnique(ctx, tx, entity, nil); err != nil {
		return nil, s.wrap("create", err)
	}

	cols, args := s.table.Columns, s.table.Values(entity)
	if s.table.SetKey == nil {
		key := s.table.KeyOf(entity)
		if err := s.checkKeyFree(ctx, tx, key); err != nil {
			return nil, s.wrap("create", err)
		}
		cols = append([]string{s.table.Key}, cols...)
		args = append([]any{key}, args...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table.Name, strings.Join(cols, ", "), placeholders(len(cols)))

	switch {
	case s.table.SetKey == nil:
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return nil, s.wrap("create", err)
		}
	case s.dialect.Returning:
		var id int64
		if err := tx.GetContext(ctx, &id, tx.Rebind(query+" RETURNING "+s.table.Key), args...); err != nil {
			return nil, s.wrap("create", err)
		}
		s.table.SetKey(entity, id)
	default:
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return nil, s.wrap("create", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, s.wrap("create", err)
		}
		s.table.SetKey(entity, id)
	}

	created, err := s.get(ctx, tx, s.table.KeyOf(entity))
	if err != nil {
		return nil, s.wrap("create", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.wrap("commit", err)
	}
	return created, nil
}

// Update reads, mutates and rewrites the row in one transaction / Lit, modifie et réécrit la ligne en une transaction
// Errors returned by mutate are passed through unchanged.
func (s *Store[T, K]) Update(ctx context.Context, id K, mutate func(*T) error) (*T, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, s.wrap("begin", err)
	}
	defer tx.Rollback()

	current, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, s.wrap("update", err)
	}

	if mutate != nil {
		if err := mutate(current); err != nil {
			return nil, err
		}
	}

	if err := s.checkUnique(ctx, tx, current, &id); err != nil {
		return nil, s.wrap("update", err)
	}

	if len(s.table.Columns) > 0 {
		sets := make([]string, len(s.table.Columns))
		for i, c := range s.table.Columns {
			sets[i] = c + " = ?"
		}
		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.table.Name, strings.Join(sets, ", "), s.table.Key)
		args := append(s.table.Values(current), id)
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return nil, s.wrap("update", err)
		}
	}

	updated, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, s.wrap("update", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.wrap("commit", err)
	}
	return updated, nil
}

// Delete removes one row / Supprime une ligne
func (s *Store[T, K]) Delete(ctx context.Context, id K) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.wrap("begin", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.table.Name, s.table.Key)
	res, err := tx.ExecContext(ctx, tx.Rebind(query), id)
	if err != nil {
		return s.wrap("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.wrap("delete", err)
	}
	if n == 0 {
		return s.wrap("delete", db.ErrNoRecord)
	}
	if err := tx.Commit(); err != nil {
		return s.wrap("commit", err)
	}
	return nil
}

func (s *Store[T, K]) get(ctx context.Context, q ports.DBTX, id K) (*T, error) {
	row := new(T)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", s.selectCols, s.table.Name, s.table.Key)
	if err := q.GetContext(ctx, row, q.Rebind(query), id); err != nil {
		return nil, err
	}
	return row, nil
}

// checkUnique rejects values already held by another row; exclude skips the row being updated
// Rejette les valeurs déjà prises par une autre ligne ; exclude ignore la ligne mise à jour
func (s *Store[T, K]) checkUnique(ctx context.Context, q ports.DBTX, entity *T, exclude *K) error {
	for _, u := range s.table.Unique {
		v := u.Value(entity)
		if v == nil {
			continue
		}
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", s.table.Name, u.Column)
		args := []any{v}
		if exclude != nil {
			query += fmt.Sprintf(" AND %s <> ?", s.table.Key)
			args = append(args, *exclude)
		}
		var n int
		if err := q.GetContext(ctx, &n, q.Rebind(query), args...); err != nil {
			return err
		}
		if n > 0 {
			return &db.DuplicateError{Table: s.table.Name, Column: u.Column, Value: v}
		}
	}
	return nil
}

func (s *Store[T, K]) checkKeyFree(ctx context.Context, q ports.DBTX, key K) error {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", s.table.Name, s.table.Key)
	if err := q.GetContext(ctx, &n, q.Rebind(query), key); err != nil {
		return err
	}
	if n > 0 {
		return &db.DuplicateError{Table: s.table.Name, Column: s.table.Key, Value: key}
	}
	return nil
}

// wrap translates err and prefixes it with the table and operation / Traduit err et le préfixe
func (s *Store[T, K]) wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		err = db.ErrNoRecord
	} else if s.dialect.Translate != nil {
		err = s.dialect.Translate(err)
	}
	var dup *db.DuplicateError
	if errors.Is(err, db.ErrDuplicate) && !errors.As(err, &dup) {
		err = &db.DuplicateError{Table: s.table.Name}
	}
	return fmt.Errorf("%s %s: %w", op, s.table.Name, err)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
