package milestones

import (
	"errors"
	"fmt"
	"net/http"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// announce posts the embed to the log channel. Unknown or inaccessible
// channels are reported as entities.ErrChannelUnavailable.
func announce(sender common.ChannelSender, channelID string, embed *discordgo.MessageEmbed) error {
	if channelID == "" {
		return fmt.Errorf("%w: no log channel configured", entities.ErrChannelUnavailable)
	}

	_, err := sender.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusForbidden:
			return fmt.Errorf("%w: channel %s: %v", entities.ErrChannelUnavailable, channelID, err)
		}
	}
	return fmt.Errorf("failed to post announcement to channel %s: %w", channelID, err)
}
