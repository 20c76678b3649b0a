package app_test

import (
	"context"
	"testing"

	"github.com/Olprog59/go-fromagerie/internal/app"
	"github.com/Olprog59/go-fromagerie/internal/config"
	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/Olprog59/go-fromagerie/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Database: config.DatabaseConfig{
			Type:        "sqlite",
			DSN:         ":memory:",
			AutoMigrate: true,
		},
	}
}

func TestNewContainer(t *testing.T) {
	container, err := app.NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	require.NotNil(t, container)
	defer container.Close()

	// Assert that all fields are initialized
	assert.NotNil(t, container.DB)
	assert.NotNil(t, container.Config)
	assert.NotNil(t, container.Metrics)
	assert.Equal(t, db.SQLite, container.Type)
	assert.NotNil(t, container.Clients)
	assert.NotNil(t, container.Commandes)
	assert.NotNil(t, container.Communes)
	assert.NotNil(t, container.Conditionnements)
	assert.NotNil(t, container.Departements)
	assert.NotNil(t, container.Objets)
	assert.NotNil(t, container.Utilisateurs)

	require.NoError(t, container.Ping(context.Background()))

	mg, err := container.Migrator()
	require.NoError(t, err)
	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestNewContainer_ServicesShareDatabase(t *testing.T) {
	ctx := context.Background()
	container, err := app.NewContainer(ctx, memoryConfig())
	require.NoError(t, err)
	defer container.Close()

	nom := "Ain"
	_, err = container.Departements.Create(ctx, domain.DepartementPatch{Code: strPtr("01"), Nom: &nom})
	require.NoError(t, err)

	got, err := container.Departements.Get(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, "Ain", got.Nom)

	_, err = container.Departements.Get(ctx, "999")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestNewContainer_WithoutAutoMigrate(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.AutoMigrate = false

	container, err := app.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer container.Close()

	mg, err := container.Migrator()
	require.NoError(t, err)
	version, _, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

func TestNewContainer_UnsupportedType(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Type = "oracle"

	_, err := app.NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
