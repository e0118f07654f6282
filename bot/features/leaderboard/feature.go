package leaderboard

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"milestonebot/application/dto"
	"milestonebot/bot/common"
	"milestonebot/domain/entities"
	"milestonebot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type channelLookup interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Feature handles /leaderboard and posts the daily broadcast
type Feature struct {
	members  common.MemberLookup
	sender   common.ChannelSender
	channels channelLookup
	ledger   interfaces.LedgerService
	images   *ImageGenerator
	size     int
	now      func() time.Time
}

// NewFeature creates a new leaderboard feature instance
func NewFeature(session *discordgo.Session, ledger interfaces.LedgerService, catalog interfaces.CatalogProvider, size int) *Feature {
	return &Feature{
		members:  session,
		sender:   session,
		channels: session,
		ledger:   ledger,
		images:   NewImageGenerator(catalog),
		size:     size,
		now:      time.Now,
	}
}

// HandleCommand handles the /leaderboard command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring leaderboard response: %v", err)
		return
	}

	ctx := context.Background()
	players, err := f.ledger.LeaderboardTopN(ctx, f.size)
	if err != nil {
		common.HandleError(s, i, fmt.Errorf("failed to load leaderboard: %w", err), true)
		return
	}

	embed, files := f.render(ctx, i.GuildID, Title(f.size), players, f.now())
	common.FollowUp(s, i, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files:  files,
	})
}

// PostLeaderboard posts the broadcast to the announcement channel.
// The guild used for name lookups is the channel's guild.
func (f *Feature) PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error {
	if post.ChannelID == "" {
		return fmt.Errorf("%w: no log channel configured", entities.ErrChannelUnavailable)
	}

	channel, err := f.channels.Channel(post.ChannelID)
	if err != nil || channel == nil {
		return fmt.Errorf("%w: channel %s: %v", entities.ErrChannelUnavailable, post.ChannelID, err)
	}

	embed, files := f.render(ctx, channel.GuildID, DailyTitle(f.size), post.Players, post.GeneratedAt)
	_, err = f.sender.ChannelMessageSendComplex(post.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files:  files,
	})
	if err != nil {
		return fmt.Errorf("failed to post leaderboard to channel %s: %w", post.ChannelID, err)
	}

	log.WithFields(log.Fields{
		"channel_id": post.ChannelID,
		"players":    len(post.Players),
	}).Info("Posted daily leaderboard")
	return nil
}

// render builds the embed and its table image. A failed render drops the
// image and keeps the text fields.
func (f *Feature) render(ctx context.Context, guildID, title string, players []entities.PlayerSummary, at time.Time) (*discordgo.MessageEmbed, []*discordgo.File) {
	names := ResolveNames(ctx, f.members, guildID, players)

	image, err := f.images.Generate(players, names)
	if err != nil {
		log.WithError(err).Warn("Failed to render leaderboard image")
		return BuildLeaderboardEmbed(title, players, names, at, false), nil
	}

	files := []*discordgo.File{{
		Name:        common.LeaderboardImageName,
		ContentType: "image/png",
		Reader:      bytes.NewReader(image),
	}}
	return BuildLeaderboardEmbed(title, players, names, at, true), files
}
