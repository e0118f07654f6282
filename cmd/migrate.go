package cmd

import (
	"fmt"
	"strconv"

	"milestonebot/config"
	"milestonebot/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres ledger schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := migrationDatabaseURL()
		if err != nil {
			return err
		}
		return database.MigrateUp(url)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid steps value: %s", args[0])
			}
			steps = n
		}

		url, err := migrationDatabaseURL()
		if err != nil {
			return err
		}
		return database.MigrateDown(url, steps)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := migrationDatabaseURL()
		if err != nil {
			return err
		}

		status, err := database.MigrateStatus(url)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !status.Applied {
			fmt.Fprintln(out, "No migrations applied")
			return nil
		}
		fmt.Fprintf(out, "Current version: %d\n", status.Version)
		if status.Dirty {
			fmt.Fprintln(out, "WARNING: database is in a dirty state")
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func migrationDatabaseURL() (string, error) {
	cfg, err := config.LoadForTools()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	configureLogging(cfg.LogLevel, cfg.Environment)

	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL is required for migrations")
	}
	return cfg.GetDatabaseURL(), nil
}
