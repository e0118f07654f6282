package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd starts the bot when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "milestonebot",
	Short: "Discord bot that records milestones in a shared ledger",
	Long: `milestonebot records milestone submissions in a spreadsheet-backed ledger,
answers leaderboard and personal stats commands, and posts a daily leaderboard.

Run without arguments to start the bot.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Discord bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd, migrateCmd, leaderboardCmd)
}

// Execute runs the CLI until the command finishes or SIGINT/SIGTERM arrives
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
