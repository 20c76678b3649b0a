package mysql

import (
	_ "github.com/go-sql-driver/mysql" // registers the "mysql" driver

	"github.com/Olprog59/go-fromagerie/internal/repository/sqlstore"
)

// Dialect describes MySQL, generated keys come from LastInsertId / Décrit MySQL
var Dialect = sqlstore.Dialect{
	Name:      "mysql",
	Returning: false,
	Translate: handleError,
}

// Factory implements DatabaseFactory for MySQL / Implémente DatabaseFactory pour MySQL
type Factory struct {
	sqlstore.Factory
}

// NewFactory creates the MySQL factory / Crée la factory MySQL
func NewFactory() *Factory {
	return &Factory{Factory: sqlstore.Factory{Dialect: Dialect}}
}
