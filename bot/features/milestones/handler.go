package milestones

import (
	"context"
	"errors"
	"fmt"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleSubmit handles the /milestone command
func (f *Feature) HandleSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring milestone response: %v", err)
		return
	}

	options := common.OptionMap(i.ApplicationCommandData().Options)
	reply, err := f.submit(context.Background(), common.InteractionUserID(i), common.InteractionDisplayName(i), options)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}
	common.FollowUp(s, i, &discordgo.WebhookParams{Content: reply})
}

// HandleRemove handles the /remove_milestone command
func (f *Feature) HandleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring remove response: %v", err)
		return
	}

	options := common.OptionMap(i.ApplicationCommandData().Options)
	reply, err := f.remove(context.Background(), common.InteractionUserID(i), options)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}
	common.FollowUp(s, i, &discordgo.WebhookParams{Content: reply})
}

// HandleAutocomplete suggests catalog species while the user types
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var query string
	if focused := common.FocusedOption(i.ApplicationCommandData().Options); focused != nil && focused.Name == common.OptionSpecies {
		query = focused.StringValue()
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: AutocompleteChoices(f.catalog.Catalog(), query),
		},
	})
	if err != nil {
		log.Errorf("Error sending autocomplete choices: %v", err)
	}
}

// submit records the milestone and announces it. The entry stays recorded
// when the announcement fails; the reply then carries a warning instead.
func (f *Feature) submit(ctx context.Context, userID, displayName string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	species, tier, err := parseKey(options)
	if err != nil {
		return "", err
	}
	sheetURL := common.StringOption(options, common.OptionSheetURL)

	if !f.catalog.Catalog().HasSpecies(species) {
		log.WithFields(log.Fields{
			"user_id": userID,
			"species": species,
		}).Warn("Milestone submitted for species outside the catalog")
	}

	entry, err := f.ledger.SubmitMilestone(ctx, userID, displayName, species, tier, sheetURL, f.now())
	if err != nil {
		return "", fmt.Errorf("failed to submit milestone: %w", err)
	}

	embed := BuildAnnouncementEmbed(entry, displayName, f.catalog.Catalog())
	if err := announce(f.sender, f.channelID, embed); err != nil {
		log.WithFields(log.Fields{
			"discord_id": userID,
			"channel_id": f.channelID,
			"error":      err,
		}).Warn("Milestone recorded but announcement failed")

		if errors.Is(err, entities.ErrChannelUnavailable) {
			return "⚠️ Milestone logged, but the log channel was not found. Check your LOG_CHANNEL_ID.", nil
		}
		return "⚠️ Milestone logged, but the announcement could not be posted.", nil
	}

	return "✅ Milestone logged and announced!", nil
}

func (f *Feature) remove(ctx context.Context, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	species, tier, err := parseKey(options)
	if err != nil {
		return "", err
	}

	if _, err := f.ledger.RemoveLatestMilestone(ctx, userID, species, tier); err != nil {
		if errors.Is(err, entities.ErrMilestoneNotFound) {
			return "", common.NewUserError(
				fmt.Sprintf("No matching milestone found for %s.", common.FormatMilestoneKey(species, tier)),
				err.Error(),
			)
		}
		return "", fmt.Errorf("failed to remove milestone: %w", err)
	}

	return fmt.Sprintf("✅ Removed your milestone entry for %s.", common.FormatMilestoneKey(species, tier)), nil
}

func parseKey(options map[string]*discordgo.ApplicationCommandInteractionDataOption) (string, entities.Tier, error) {
	species := common.StringOption(options, common.OptionSpecies)
	if species == "" {
		return "", "", common.NewUserError("Please choose a species.", "missing species option")
	}

	raw := common.StringOption(options, common.OptionTier)
	tier, ok := entities.ParseTier(raw)
	if !ok {
		return "", "", common.NewUserError(
			fmt.Sprintf("Unknown tier %q.", raw),
			fmt.Sprintf("invalid tier option %q", raw),
		)
	}
	return species, tier, nil
}
