package milestones

import (
	"fmt"
	"time"

	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildAnnouncementEmbed creates the public embed announcing a new milestone
func BuildAnnouncementEmbed(entry *entities.Entry, displayName string, catalog *entities.Catalog) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s earned a %s milestone!", displayName, entry.Tier),
		Color:     catalog.TierColor(entry.Tier),
		Timestamp: entry.Timestamp.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Species", Value: entry.Species},
			{Name: "Tier", Value: string(entry.Tier)},
			{Name: "Character Sheet URL", Value: entry.SheetURL},
		},
	}
	if image := catalog.TierImage(entry.Tier); image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: image}
	}
	return embed
}

// AutocompleteChoices returns the species suggestions for a partial query
func AutocompleteChoices(catalog *entities.Catalog, query string) []*discordgo.ApplicationCommandOptionChoice {
	matches := catalog.FilterSpecies(query, entities.MaxAutocompleteChoices)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(matches))
	for _, species := range matches {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  species,
			Value: species,
		})
	}
	return choices
}
