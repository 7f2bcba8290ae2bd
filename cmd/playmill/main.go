// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package main is the playmill command-line entry point.
//
// Playmill ingests JSON song-metadata and user-activity-log files from local
// directories and loads them into a DuckDB star schema for analytical
// querying. Two subcommands are run in fixed order:
//
//	playmill reset   # drop and recreate the five tables
//	playmill run     # ETL: song directory first, then log directory
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (playmill.yaml),
// built-in defaults. The commonly used environment variables:
//
//	DUCKDB_PATH    database file (default sparkify.duckdb)
//	SONG_DATA_DIR  song-metadata tree (default data/song_data)
//	LOG_DATA_DIR   activity-log tree (default data/log_data)
//	LOG_LEVEL      trace|debug|info|warn|error (default info)
//
// Any unhandled error aborts the remaining run immediately and the process
// exits non-zero; rows committed before the failure stay in the store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/playmill/playmill/internal/config"
	"github.com/playmill/playmill/internal/database"
	"github.com/playmill/playmill/internal/etl"
	"github.com/playmill/playmill/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Err(err).Msg("playmill failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "playmill",
		Short:         "Batch ETL loading song plays into a DuckDB star schema",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
			})
			return nil
		},
	}

	root.AddCommand(newResetCmd(&cfg))
	root.AddCommand(newRunCmd(&cfg))
	return root
}

func newResetCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate the five star-schema tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			db, err := database.New(&(*cfg).Database)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := db.Reset(ctx); err != nil {
				return err
			}

			logging.Info().Str("path", (*cfg).Database.Path).Msg("Schema reset")
			return nil
		},
	}
}

func newRunCmd(cfg **config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ETL over the song directory, then the log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			db, err := database.New(&(*cfg).Database)
			if err != nil {
				return err
			}
			defer closeDB(db)

			// The run assumes `playmill reset` already created the
			// tables; CREATE IF NOT EXISTS keeps a forgotten reset
			// from failing the run against a fresh database file.
			if err := db.CreateTables(ctx); err != nil {
				return err
			}

			pipeline := etl.New(&(*cfg).Data, db, etl.WithDryRun(dryRun))
			_, err = pipeline.Run(ctx)
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and transform but load nothing")
	return cmd
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func closeDB(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing database")
	}
}
