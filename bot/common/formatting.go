package common

import (
	"fmt"
	"strings"

	"milestonebot/domain/entities"
)

// FormatTierLines renders one "- Tier: n" line per tier in ascending order
func FormatTierLines(count func(entities.Tier) int) string {
	lines := make([]string, 0, len(entities.Tiers))
	for _, t := range entities.Tiers {
		lines = append(lines, fmt.Sprintf("- %s: %d", t, count(t)))
	}
	return strings.Join(lines, "\n")
}

// FormatPlayerSummary renders the leaderboard field value for one player
func FormatPlayerSummary(p entities.PlayerSummary) string {
	return fmt.Sprintf("Milestones: %d\n%s", p.Total, FormatTierLines(p.Count))
}

// FormatRank returns the leaderboard field name for a position
func FormatRank(rank int, name string) string {
	return fmt.Sprintf("%d. %s", rank, name)
}

// FormatMilestoneKey names a (species, tier) pair in user-facing messages
func FormatMilestoneKey(species string, tier entities.Tier) string {
	return fmt.Sprintf("%s (%s)", species, tier)
}
