package db

import "strings"

// DatabaseType represents supported database types
type DatabaseType string

const (
	SQLite     DatabaseType = "sqlite"
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
)

// aliases maps accepted spellings to their database type / Associe les orthographes acceptées au type de BD
var aliases = map[string]DatabaseType{
	"":           SQLite,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"postgres":   PostgreSQL,
	"postgresql": PostgreSQL,
}

// ParseDatabaseType normalizes a configured type, defaulting to SQLite / Normalise le type configuré
func ParseDatabaseType(s string) (DatabaseType, bool) {
	dt, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return dt, ok
}

// String returns string representation
func (dt DatabaseType) String() string {
	return string(dt)
}

// IsValid checks if database type is valid
func (dt DatabaseType) IsValid() bool {
	switch dt {
	case SQLite, MySQL, PostgreSQL:
		return true
	default:
		return false
	}
}
