package cmd

import (
	"fmt"
	"strconv"

	"milestonebot/config"
	"milestonebot/domain/entities"
	"milestonebot/domain/services"
	"milestonebot/repository"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var leaderboardSize int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current top players",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadForTools()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		configureLogging(cfg.LogLevel, cfg.Environment)

		ctx := cmd.Context()
		store, closeStore, err := repository.NewLedgerStore(ctx, cfg, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize ledger store: %w", err)
		}
		defer closeStore()

		players, err := services.NewLedgerService(store, nil).LeaderboardTopN(ctx, leaderboardSize)
		if err != nil {
			return fmt.Errorf("failed to load leaderboard: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(players))
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardSize, "top", "n", 5, "number of players to show")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderLeaderboard formats the ranking as a terminal table
func renderLeaderboard(players []entities.PlayerSummary) string {
	if len(players) == 0 {
		return "No milestones logged yet."
	}

	headers := []string{"#", "DiscordID", "Total"}
	for _, t := range entities.Tiers {
		headers = append(headers, string(t))
	}

	rows := make([][]string, 0, len(players))
	for i, p := range players {
		row := []string{strconv.Itoa(i + 1), p.DiscordID, strconv.Itoa(p.Total)}
		for _, t := range entities.Tiers {
			row = append(row, strconv.Itoa(p.Count(t)))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
