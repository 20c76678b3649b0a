package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DatabaseConfig holds database connection config / Contient la config de connexion BD
type DatabaseConfig struct {
	Type            DatabaseType
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DatabaseInitializer initializes database connections / Initialise les connexions BD
type DatabaseInitializer interface {
	Initialize(ctx context.Context, config DatabaseConfig) (*sqlx.DB, error)
	ConfigureConnection(ctx context.Context, db *sqlx.DB, config DatabaseConfig) error
	Type() DatabaseType
}

// InitializerRegistry manages database initializers / Gère les initialiseurs de BD
type InitializerRegistry[T DatabaseInitializer] struct {
	factories map[DatabaseType]func() T
}

// NewInitializerRegistry creates registry / Crée le registre
func NewInitializerRegistry[T DatabaseInitializer]() *InitializerRegistry[T] {
	return &InitializerRegistry[T]{
		factories: make(map[DatabaseType]func() T),
	}
}

// Register registers initializer factory / Enregistre une factory d'initialiseur
func (r *InitializerRegistry[T]) Register(dbType DatabaseType, factory func() T) {
	r.factories[dbType] = factory
}

// Get retrieves initializer / Récupère l'initialiseur
func (r *InitializerRegistry[T]) Get(dbType DatabaseType, fallback func() T) T {
	if factory, exists := r.factories[dbType]; exists {
		return factory()
	}
	return fallback()
}

var initializerRegistry = func() *InitializerRegistry[DatabaseInitializer] {
	registry := NewInitializerRegistry[DatabaseInitializer]()
	registry.Register(MySQL, func() DatabaseInitializer { return &mysqlInitializer{} })
	registry.Register(PostgreSQL, func() DatabaseInitializer { return &postgresInitializer{} })
	registry.Register(SQLite, func() DatabaseInitializer { return &sqliteInitializer{} })
	return registry
}()

// NewDatabaseInitializer creates initializer for database type / Crée l'initialiseur pour le type de BD
func NewDatabaseInitializer(dbType DatabaseType) DatabaseInitializer {
	return initializerRegistry.Get(dbType, func() DatabaseInitializer { return &sqliteInitializer{} })
}

// Open initializes the pool for config.Type / Ouvre le pool pour config.Type
func Open(ctx context.Context, config DatabaseConfig) (*sqlx.DB, error) {
	return NewDatabaseInitializer(config.Type).Initialize(ctx, config)
}

// baseInitializer provides common functionality / Fournit les fonctionnalités communes
type baseInitializer struct{}

func (b *baseInitializer) setConnectionPool(db *sqlx.DB, config DatabaseConfig) {
	maxOpen := config.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxIdle := config.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}
}

// open connects, configures and pings / Connecte, configure et vérifie la connexion
func (b *baseInitializer) open(ctx context.Context, i DatabaseInitializer, driver, dsn string, config DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", i.Type(), err)
	}

	if err := i.ConfigureConnection(ctx, db, config); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", i.Type(), err)
	}

	slog.Info("database connected", "type", i.Type().String())
	return db, nil
}

// MySQL initializer / Initialiseur MySQL
type mysqlInitializer struct {
	baseInitializer
}

// mysqlSQLMode rejects oversized and invalid values instead of truncating them / Refuse les valeurs trop longues au lieu de les tronquer
const mysqlSQLMode = "'TRADITIONAL,NO_AUTO_VALUE_ON_ZERO'"

func (i *mysqlInitializer) Initialize(ctx context.Context, config DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := MySQLDSN(config.DSN)
	if err != nil {
		return nil, err
	}
	return i.open(ctx, i, "mysql", dsn, config)
}

func (i *mysqlInitializer) ConfigureConnection(ctx context.Context, db *sqlx.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)
	return nil
}

func (i *mysqlInitializer) Type() DatabaseType {
	return MySQL
}

// PostgreSQL initializer / Initialiseur PostgreSQL
type postgresInitializer struct {
	baseInitializer
}

func (i *postgresInitializer) Initialize(ctx context.Context, config DatabaseConfig) (*sqlx.DB, error) {
	return i.open(ctx, i, "postgres", config.DSN, config)
}

func (i *postgresInitializer) ConfigureConnection(ctx context.Context, db *sqlx.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)

	if _, err := db.ExecContext(ctx, "SET TIME ZONE 'UTC'"); err != nil {
		slog.Warn("failed to set PostgreSQL timezone", "error", err)
	}

	return nil
}

func (i *postgresInitializer) Type() DatabaseType {
	return PostgreSQL
}

// SQLite initializer / Initialiseur SQLite
type sqliteInitializer struct {
	baseInitializer
}

// sqlitePragmas are applied to every new connection through the DSN / Appliqués à chaque connexion via le DSN
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"trusted_schema(OFF)",
}

func (i *sqliteInitializer) Initialize(ctx context.Context, config DatabaseConfig) (*sqlx.DB, error) {
	dsn := config.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	return i.open(ctx, i, "sqlite", SQLiteDSN(dsn), config)
}

func (i *sqliteInitializer) ConfigureConnection(ctx context.Context, db *sqlx.DB, config DatabaseConfig) error {
	i.setConnectionPool(db, config)

	// Each connection to :memory: opens its own empty database
	if IsSQLiteMemory(config.DSN) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return nil
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		slog.Warn("failed to enable WAL journal", "error", err)
	}

	return nil
}

func (i *sqliteInitializer) Type() DatabaseType {
	return SQLite
}

// SQLiteDSN appends the connection pragmas unless the DSN already sets some
// Ajoute les pragmas de connexion sauf si le DSN en définit déjà
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// MySQLDSN adds the session settings every pooled connection needs: the driver
// replays DSN params on each new connection. Settings already in dsn are kept.
// Ajoute au DSN les réglages de session rejoués à chaque nouvelle connexion.
func MySQLDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	if _, ok := mc.Params["sql_mode"]; !ok {
		mc.Params["sql_mode"] = mysqlSQLMode
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

// IsSQLiteMemory reports whether dsn targets an in-memory database / Indique si dsn cible une base en mémoire
func IsSQLiteMemory(dsn string) bool {
	return dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
