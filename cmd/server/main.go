package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Olprog59/go-fromagerie/internal/config"
	"github.com/Olprog59/go-fromagerie/internal/logging"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand / État partagé par les sous-commandes
type cli struct {
	configPath   string
	cfg          *config.Config
	closeLogging func() error
}

// main is the application entry point / Point d'entrée de l'application
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "fromagerie",
		Short:         "Back-office API for the cheese shop",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
		// Without a subcommand the server starts
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file (default ./config.yaml)")

	root.AddCommand(
		c.newServeCmd(),
		c.newMigrateCmd(),
		c.newBackupCmd(),
	)
	return root
}

// setup loads configuration and installs the logger / Charge la configuration et installe le logger
func (c *cli) setup() error {
	cfg, err := config.LoadConfigFile(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	c.closeLogging = logging.Setup(logging.Options{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		AddSource:     cfg.Logging.AddSource,
		LokiEnabled:   cfg.Logging.LokiEnabled,
		LokiURL:       cfg.Logging.LokiURL,
		LokiLabels:    cfg.Logging.LokiLabels,
		LokiBatchSize: cfg.Logging.LokiBatchSize,
	})
	return nil
}

// teardown flushes pending log batches / Vide les lots de logs en attente
func (c *cli) teardown() error {
	if c.closeLogging == nil {
		return nil
	}
	if err := c.closeLogging(); err != nil {
		slog.Warn("failed to flush logs", "error", err)
	}
	return nil
}
