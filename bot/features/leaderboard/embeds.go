package leaderboard

import (
	"fmt"
	"time"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Title returns the title of the on-demand leaderboard
func Title(size int) string {
	return fmt.Sprintf("🏆 Leaderboard: Top %d Players", size)
}

// DailyTitle returns the title of the scheduled broadcast
func DailyTitle(size int) string {
	return fmt.Sprintf("🏆 Daily Leaderboard: Top %d Players", size)
}

// BuildLeaderboardEmbed creates the leaderboard embed with one field per player.
// When withImage is set the embed references the rendered table attachment.
func BuildLeaderboardEmbed(title string, players []entities.PlayerSummary, names []string, generatedAt time.Time, withImage bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     common.ColorLedger,
		Timestamp: generatedAt.UTC().Format(time.RFC3339),
		Fields:    make([]*discordgo.MessageEmbedField, 0, len(players)),
	}

	for i, p := range players {
		name := common.FallbackName(p.DiscordID)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  common.FormatRank(i+1, name),
			Value: common.FormatPlayerSummary(p),
		})
	}

	if len(players) == 0 {
		embed.Description = "No milestones logged yet."
	}

	if withImage {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + common.LeaderboardImageName}
	}
	return embed
}
