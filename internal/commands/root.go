package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/config"
	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// dbPath overrides TIMESHEET_DB_PATH when set
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "A punch clock for hourly jobs",
	Long: `timesheet tracks the hours you work across jobs. Punch in and out,
see the totals and earnings for the current pay period or week, and export
them as CSV, all from the terminal.`,
}

// app is what a command gets once configuration is loaded and the store is open
type app struct {
	cfg   *config.Config
	store *db.Store
	log   *slog.Logger
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close database", logging.FieldError, err)
	}
}

// openApp loads the configuration, sets up logging and opens the store
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	logger = logger.With(logging.FieldComponent, logging.ComponentApp)

	store, err := db.Open(cfg.DBPath, db.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &app{cfg: cfg, store: store, log: logger}, nil
}

// withStore wraps a command function to open the store first
func withStore(fn func(*cobra.Command, []string, *app)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.Close()

		cmd.SetContext(logging.ContextWithLogger(cmd.Context(), a.log))
		fn(cmd, args, a)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timesheet %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (overrides TIMESHEET_DB_PATH)")

	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(punchCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
