package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Olprog59/go-fromagerie/internal/app"
	"github.com/Olprog59/go-fromagerie/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileContainer(t *testing.T, retentionDays int) (*app.Container, string) {
	t.Helper()
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Database: config.DatabaseConfig{
			Type:        "sqlite",
			DSN:         filepath.Join(dir, "fromagerie.db"),
			AutoMigrate: true,
		},
		Backup: config.BackupConfig{Path: backupDir, RetentionDays: retentionDays},
	}

	container, err := app.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })
	return container, backupDir
}

func TestBackup_CreatesSnapshot(t *testing.T) {
	container, backupDir := fileContainer(t, 7)

	path, err := container.Backup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, backupDir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "fromagerie.db.backup-"))
	assert.True(t, strings.HasSuffix(path, ".db"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Equal(t, 1.0, testutil.ToFloat64(container.Metrics.BackupsTotal.WithLabelValues("success")))
	assert.Positive(t, testutil.ToFloat64(container.Metrics.LastBackup))
}

func TestBackup_RemovesExpiredSnapshots(t *testing.T) {
	container, backupDir := fileContainer(t, 7)
	require.NoError(t, os.MkdirAll(backupDir, 0o755))

	old := filepath.Join(backupDir, "fromagerie.db.backup-20000101-000000.db")
	unrelated := filepath.Join(backupDir, "notes.txt")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o644))

	past := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(unrelated, past, past))

	path, err := container.Backup(context.Background())
	require.NoError(t, err)

	assert.NoFileExists(t, old)
	assert.FileExists(t, unrelated)
	assert.FileExists(t, path)
}

func TestBackup_InMemoryUnsupported(t *testing.T) {
	container, err := app.NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer container.Close()

	_, err = container.Backup(context.Background())
	assert.ErrorIs(t, err, app.ErrBackupUnsupported)
	assert.Equal(t, 1.0, testutil.ToFloat64(container.Metrics.BackupsTotal.WithLabelValues("failure")))
}
