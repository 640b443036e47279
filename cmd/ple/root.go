package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gople/ple"
	"github.com/gople/ple/sqlite"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ple",
	Short: "ple - the persistent logic engine",
	Long: `ple builds, stores and evaluates boolean logic rules: trees of
composable operators (and, or, not, xor, nand, nor, regular-expression
matchers and constant true/false leaves) evaluated against input text.

Rules are persisted to a SQLite database named in the config file.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "ple.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging configures the process logger according to --verbose.
func setupLogging() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// openEngine opens the configured store and wraps it in an engine.
// The caller closes the returned store.
func openEngine() (*ple.Engine, *sqlite.Store, error) {
	logger := setupLogging()

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	store, err := sqlite.Open(cfg.Database, sqlite.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	engine := ple.NewEngine(ple.WithStore(store), ple.WithLogger(logger))
	return engine, store, nil
}
