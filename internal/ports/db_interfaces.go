package ports

import (
	"context"
	"database/sql"
)

// DBTX abstracts the sqlx operations shared by DB and Tx / Abstrait les opérations sqlx communes à DB et Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	Rebind(query string) string
}

