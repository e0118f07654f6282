package stats

import (
	"fmt"
	"sort"
	"time"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildStatsEmbed creates the personal stats embed: one field per species
// sorted by name, tier lines in ascending tier order, grand total in the footer
func BuildStatsEmbed(displayName string, stats entities.PersonalStats, generatedAt time.Time) *discordgo.MessageEmbed {
	species := make([]string, 0, len(stats))
	for sp := range stats {
		species = append(species, sp)
	}
	sort.Strings(species)

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s's Milestone Stats", displayName),
		Color:     common.ColorLedger,
		Timestamp: generatedAt.UTC().Format(time.RFC3339),
		Fields:    make([]*discordgo.MessageEmbedField, 0, len(species)),
	}
	total := 0
	for _, sp := range species {
		counts := stats[sp]
		total += counts.Total()
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  sp,
			Value: common.FormatTierLines(func(t entities.Tier) int { return counts[t] }),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total milestones: %d", total)}
	return embed
}
