package repository

import (
	"context"
	"fmt"

	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/jmoiron/sqlx"
)

// NewTestDB opens a migrated in-memory SQLite database / Ouvre une base SQLite en mémoire migrée
func NewTestDB(ctx context.Context) (*sqlx.DB, error) {
	database, err := db.Open(ctx, db.DatabaseConfig{Type: db.SQLite, DSN: ":memory:"})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, db.SQLite, ""); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate test database: %w", err)
	}
	return database, nil
}

// NewSQLiteRepositories creates every SQLite repository for tests / Crée tous les repositories SQLite pour les tests
func NewSQLiteRepositories(database *sqlx.DB) Repositories {
	return NewAdapter(database, "sqlite").Repositories()
}
