// Package main is the entry point for the hospital billing server.
// Running it without a sub-command starts the HTTP API.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/hospital-billing/internal/auth"
	"github.com/mmynk/hospital-billing/internal/config"
	"github.com/mmynk/hospital-billing/pkg/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// flags override the matching environment settings when set.
type flags struct {
	port       int
	sqlitePath string
}

func main() {
	// Console logging until the configuration is loaded.
	logging.Setup()

	if err := newRootCommand().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f flags

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(f)
			if err != nil {
				return err
			}
			defer closer.Close()
			return serve(cmd.Context(), cfg)
		},
	}

	rootCmd := &cobra.Command{
		Use:   "hospital-billing",
		Short: "Hospital billing REST service",
		Long: `hospital-billing serves the item catalog and bill ledger over a REST/JSON API.

Configuration is read from the environment (PORT, DB_DRIVER, DATABASE_URL,
SQLITE_PATH, LOG_LEVEL, ...). Without a sub-command the server is started.`,
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
		Version:      version,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(f)
			if err != nil {
				return err
			}
			defer closer.Close()
			return migrate(cmd.Context(), cfg)
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash for EDITOR_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return hashPassword(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().IntVar(&f.port, "port", 0, "listen port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&f.sqlitePath, "sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	rootCmd.AddCommand(serveCmd, migrateCmd, hashCmd)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and configures logging.
func setup(f flags) (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if f.port != 0 {
		cfg.Port = f.port
	}
	if f.sqlitePath != "" {
		cfg.SQLitePath = f.sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	closer := logging.SetupWithOptions(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	return cfg, closer, nil
}

func hashPassword(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read password: %w", err)
	}

	hash, err := auth.HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
