package sqlite

import (
	"github.com/Olprog59/go-fromagerie/internal/repository/sqlstore"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Dialect describes SQLite (3.35+ supports RETURNING) / Décrit SQLite
var Dialect = sqlstore.Dialect{
	Name:      "sqlite",
	Returning: true,
	Translate: handleError,
}

// Factory implements DatabaseFactory for SQLite / Implémente DatabaseFactory pour SQLite
// The compile-time check is in adapter.go to avoid import cycles
// La vérification à la compilation est dans adapter.go pour éviter les cycles d'imports
type Factory struct {
	sqlstore.Factory
}

// NewFactory creates the SQLite factory / Crée la factory SQLite
func NewFactory() *Factory {
	return &Factory{Factory: sqlstore.Factory{Dialect: Dialect}}
}
