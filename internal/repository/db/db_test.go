package db

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestParseDatabaseType(t *testing.T) {
	tests := []struct {
		in   string
		want DatabaseType
		ok   bool
	}{
		{"", SQLite, true},
		{"sqlite3", SQLite, true},
		{"MySQL", MySQL, true},
		{"mariadb", MySQL, true},
		{"postgresql", PostgreSQL, true},
		{"oracle", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDatabaseType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=trusted_schema(OFF)",
		SQLiteDSN(":memory:"))
	assert.Contains(t, SQLiteDSN("file:app.db?cache=shared"), "cache=shared&_pragma=foreign_keys(1)")
	assert.Equal(t, "app.db?_pragma=foreign_keys(0)", SQLiteDSN("app.db?_pragma=foreign_keys(0)"))

	assert.True(t, IsSQLiteMemory(":memory:"))
	assert.True(t, IsSQLiteMemory("file:test?mode=memory&cache=shared"))
	assert.False(t, IsSQLiteMemory("./data/app.db"))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN("fromagerie:secret@tcp(db:3306)/fromagerie")
	require.NoError(t, err)

	mc, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "'TRADITIONAL,NO_AUTO_VALUE_ON_ZERO'", mc.Params["sql_mode"])
	assert.True(t, mc.ParseTime)
	assert.Equal(t, "fromagerie", mc.DBName)

	dsn, err = MySQLDSN("u:p@tcp(db:3306)/app?sql_mode=ANSI")
	require.NoError(t, err)
	mc, err = mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "ANSI", mc.Params["sql_mode"], "explicit setting kept")

	_, err = MySQLDSN("not a dsn")
	assert.Error(t, err)
}

func TestDuplicateError(t *testing.T) {
	err := error(&DuplicateError{Table: "clients", Column: "emailcli", Value: "john@example.com"})
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, `clients with emailcli "john@example.com" already exists`, err.Error())

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "emailcli", dup.Column)
}

func TestMigrator_SQLiteUpDown(t *testing.T) {
	ctx := context.Background()
	database, err := Open(ctx, DatabaseConfig{Type: SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer database.Close()

	mg, err := NewMigrator(database, SQLite, "")
	require.NoError(t, err)

	v, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)

	require.NoError(t, mg.Up())
	require.NoError(t, mg.Up(), "second Up is a no-op")

	v, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	var tables []string
	require.NoError(t, database.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != ? ORDER BY name", MigrationsTable))
	assert.Equal(t, []string{"clients", "commandes", "communes", "conditionnements", "departements", "objets", "utilisateurs"}, tables)

	var fk int
	require.NoError(t, database.GetContext(ctx, &fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)

	require.NoError(t, mg.Down(0))
	var remaining []string
	require.NoError(t, database.SelectContext(ctx, &remaining,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'clients'"))
	assert.Empty(t, remaining)
}

func TestMigrationDriverRegistry(t *testing.T) {
	registry := NewMigrationDriverRegistry()
	assert.Equal(t, []DatabaseType{MySQL, PostgreSQL, SQLite}, registry.Types())

	f, err := registry.GetFactory(PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, "postgres", f.DriverName())

	_, err = registry.GetFactory("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"oracle" (supported: mysql, postgres, sqlite)`)
}

func TestNewDatabaseInitializer_Fallback(t *testing.T) {
	assert.Equal(t, SQLite, NewDatabaseInitializer("unknown").Type())
	assert.Equal(t, MySQL, NewDatabaseInitializer(MySQL).Type())
}
