package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Olprog59/go-fromagerie/internal/config"
	"github.com/Olprog59/go-fromagerie/internal/metrics"
	"github.com/Olprog59/go-fromagerie/internal/repository"
	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/Olprog59/go-fromagerie/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrBackupUnsupported is returned when the configured store cannot be snapshotted.
var ErrBackupUnsupported = errors.New("backup unsupported")

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB      *sqlx.DB
	Type    db.DatabaseType
	Config  *config.Config
	Metrics *metrics.Metrics
	Repos   repository.Repositories

	Clients          *service.ClientService
	Commandes        *service.CommandeService
	Communes         *service.CommuneService
	Conditionnements *service.ConditionnementService
	Departements     *service.DepartementService
	Objets           *service.ObjetService
	Utilisateurs     *service.UtilisateurService
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	dbType, ok := db.ParseDatabaseType(cfg.Database.Type)
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}

	c := &Container{
		Config: cfg,
		Type:   dbType,
		// Each container owns its registry so several containers can coexist in tests.
		Metrics: metrics.NewMetrics(prometheus.NewRegistry()),
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := c.runMigrations(); err != nil {
			c.Close() // Ensure database connection is closed on migration failure
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	c.initRepositories()
	c.initServices()

	if err := c.Metrics.RegisterDBStats(c.DB.DB, string(dbType)); err != nil {
		slog.Warn("database stats collector not registered", "error", err)
	}
	c.updateDatabaseMetrics()

	return c, nil
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase(ctx context.Context) error {
	database, err := db.Open(ctx, db.DatabaseConfig{
		Type:            c.Type,
		DSN:             c.Config.Database.DSN,
		MaxOpenConns:    c.Config.Database.MaxOpenConns,
		MaxIdleConns:    c.Config.Database.MaxIdleConns,
		ConnMaxLifetime: c.Config.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", c.Type, err)
	}

	c.DB = database
	return nil
}

// Migrator returns a migrator bound to the container's database / Retourne un migrateur lié à la BD
func (c *Container) Migrator() (*db.Migrator, error) {
	return db.NewMigrator(c.DB, c.Type, c.Config.Database.MigrationsPath)
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	mg, err := c.Migrator()
	if err != nil {
		return err
	}

	if err := mg.Up(); err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	slog.Debug("schema version", "version", version, "dirty", dirty)
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	c.Repos = repository.NewAdapter(c.DB, string(c.Type)).Repositories()
	slog.Debug("repositories initialized", "type", c.Type)
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() {
	c.Clients = service.NewClientService(c.Repos.Clients, c.Metrics)
	c.Commandes = service.NewCommandeService(c.Repos.Commandes, c.Metrics)
	c.Communes = service.NewCommuneService(c.Repos.Communes, c.Metrics)
	c.Conditionnements = service.NewConditionnementService(c.Repos.Conditionnements, c.Metrics)
	c.Departements = service.NewDepartementService(c.Repos.Departements, c.Metrics)
	c.Objets = service.NewObjetService(c.Repos.Objets, c.Metrics)
	c.Utilisateurs = service.NewUtilisateurService(c.Repos.Utilisateurs, c.Metrics)
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// Ping checks database connectivity / Vérifie la connectivité de la BD
func (c *Container) Ping(ctx context.Context) error {
	err := c.DB.PingContext(ctx)
	c.updateDatabaseMetrics()
	return err
}

// Backup snapshots the SQLite database into Backup.Path then prunes expired
// snapshots. It returns the path of the new snapshot.
// Crée un instantané de la base SQLite puis supprime les anciens.
func (c *Container) Backup(ctx context.Context) (string, error) {
	path, err := c.performBackup(ctx)
	c.Metrics.RecordBackup(err == nil, time.Now())
	if err != nil {
		return "", err
	}

	if _, err := c.cleanOldBackups(); err != nil {
		slog.Warn("backup cleanup failed", "error", err)
	}
	return path, nil
}

// performBackup creates database backup / Crée un backup de la base de données
func (c *Container) performBackup(ctx context.Context) (string, error) {
	if c.Type != db.SQLite {
		return "", fmt.Errorf("%w: %s databases are backed up with their own tooling", ErrBackupUnsupported, c.Type)
	}

	dbName := sqliteFile(c.Config.Database.DSN)
	if dbName == "" || db.IsSQLiteMemory(c.Config.Database.DSN) {
		return "", fmt.Errorf("%w: cannot backup in-memory database", ErrBackupUnsupported)
	}

	// Create backup directory if not exists / Crée le répertoire de backup s'il n'existe pas
	if err := os.MkdirAll(c.Config.Backup.Path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	backupFilename := fmt.Sprintf("%s.backup-%s.db", filepath.Base(dbName), timestamp)
	backupPath := filepath.Join(c.Config.Backup.Path, backupFilename)

	// VACUUM INTO requires SQLite 3.27.0+ and a target that does not exist yet
	if _, err := c.DB.ExecContext(ctx, "VACUUM INTO ?", backupPath); err != nil {
		return "", fmt.Errorf("backup execution failed: %w", err)
	}

	slog.Info("database backup created", "path", backupPath)
	return backupPath, nil
}

// sqliteFile extracts the file path from a SQLite DSN / Extrait le chemin du fichier depuis le DSN
func sqliteFile(dsn string) string {
	name := strings.TrimPrefix(dsn, "file:")
	if idx := strings.Index(name, "?"); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// cleanOldBackups removes old backups / Supprime les anciens backups
func (c *Container) cleanOldBackups() (int, error) {
	if c.Config.Backup.RetentionDays <= 0 {
		return 0, nil // No cleanup if retention is 0 or negative / Pas de nettoyage si rétention <= 0
	}

	cutoffTime := time.Now().AddDate(0, 0, -c.Config.Backup.RetentionDays)

	entries, err := os.ReadDir(c.Config.Backup.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	deletedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Only delete .backup-*.db files / Ne supprime que les fichiers .backup-*.db
		if !strings.Contains(entry.Name(), ".backup-") || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			slog.Warn("failed to stat backup", "file", entry.Name(), "error", err)
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			backupPath := filepath.Join(c.Config.Backup.Path, entry.Name())
			if err := os.Remove(backupPath); err != nil {
				slog.Warn("failed to delete old backup", "file", entry.Name(), "error", err)
				continue
			}
			deletedCount++
			slog.Info("deleted old backup", "file", entry.Name(),
				"age_days", int(time.Since(info.ModTime()).Hours()/24))
		}
	}

	return deletedCount, nil
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.DB != nil {
		slog.Info("closing database")
		return c.DB.Close()
	}
	return nil
}
