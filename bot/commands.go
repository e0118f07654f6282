package bot

import (
	"fmt"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// tierChoices offers every tier as a fixed choice
func tierChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.Tiers))
	for _, t := range entities.Tiers {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(t),
			Value: string(t),
		})
	}
	return choices
}

// Commands returns the slash command definitions
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        common.CommandMilestone,
			Description: "Submit your species, tier, and character-sheet link",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         common.OptionSpecies,
					Description:  "Type to autocomplete your species",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        common.OptionTier,
					Description: "Select your milestone tier",
					Required:    true,
					Choices:     tierChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        common.OptionSheetURL,
					Description: "Link to your character sheet",
					Required:    true,
				},
			},
		},
		{
			Name:        common.CommandLeaderboard,
			Description: "Show the current top players with tier breakdown",
		},
		{
			Name:        common.CommandRemoveMilestone,
			Description: "Remove your last logged milestone for a given species and tier",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         common.OptionSpecies,
					Description:  "Type to autocomplete the species to remove",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        common.OptionTier,
					Description: "Select the tier of the milestone to remove",
					Required:    true,
					Choices:     tierChoices(),
				},
			},
		},
		{
			Name:        common.CommandMyStats,
			Description: "See your personal milestone stats",
		},
	}
}

// registerCommands registers all slash commands with Discord.
// An empty guild ID registers them globally.
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	log.WithFields(log.Fields{
		"guild_id": b.config.GuildID,
		"count":    len(Commands()),
	}).Info("Registered slash commands")
	return nil
}
