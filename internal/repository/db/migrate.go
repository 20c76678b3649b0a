package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Olprog59/go-fromagerie/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migrations_path override
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// Migrator applies schema migrations / Applique les migrations de schéma
type Migrator struct {
	m      *migrate.Migrate
	dbType DatabaseType
}

// NewMigrator builds a migrator on an open pool; an empty path uses the embedded schema
// Construit un migrateur sur un pool ouvert ; un chemin vide utilise le schéma embarqué
func NewMigrator(database *sqlx.DB, dbType DatabaseType, path string) (*Migrator, error) {
	registry := NewMigrationDriverRegistry()

	driverFactory, err := registry.GetFactory(dbType)
	if err != nil {
		return nil, err
	}

	driver, err := driverFactory.CreateDriver(database.DB)
	if err != nil {
		return nil, fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	var m *migrate.Migrate
	if path != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+path, driverFactory.DriverName(), driver)
	} else {
		var src source.Driver
		src, err = iofs.New(migrations.FS, dbType.String())
		if err != nil {
			return nil, fmt.Errorf("could not open embedded %s migrations: %w", dbType, err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driverFactory.DriverName(), driver)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	return &Migrator{m: m, dbType: dbType}, nil
}

// Up applies every pending migration / Applique toutes les migrations en attente
func (mg *Migrator) Up() error {
	slog.Info("applying database migrations", "type", mg.dbType.String())
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}

// Down rolls back the given number of migrations, all of them when steps <= 0
// Annule steps migrations, toutes si steps <= 0
func (mg *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = mg.m.Steps(-steps)
	} else {
		err = mg.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Version returns the current schema version, 0 when none was applied
// Retourne la version courante du schéma, 0 si aucune migration
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Migrate runs every pending migration on database / Exécute les migrations en attente
func Migrate(database *sqlx.DB, dbType DatabaseType, path string) error {
	mg, err := NewMigrator(database, dbType, path)
	if err != nil {
		return err
	}
	return mg.Up()
}
