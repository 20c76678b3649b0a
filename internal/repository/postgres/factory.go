package postgres

import (
	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/Olprog59/go-fromagerie/internal/repository/sqlstore"
)

// Dialect describes PostgreSQL / Décrit PostgreSQL
var Dialect = sqlstore.Dialect{
	Name:      "postgres",
	Returning: true,
	Translate: handleError,
}

// Factory implements DatabaseFactory for PostgreSQL / Implémente DatabaseFactory pour PostgreSQL
type Factory struct {
	sqlstore.Factory
}

// NewFactory creates the PostgreSQL factory / Crée la factory PostgreSQL
func NewFactory() *Factory {
	return &Factory{Factory: sqlstore.Factory{Dialect: Dialect}}
}
