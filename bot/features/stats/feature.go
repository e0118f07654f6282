package stats

import (
	"context"
	"fmt"
	"time"

	"milestonebot/bot/common"
	"milestonebot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// NoMilestonesMessage is shown to users without any entries
const NoMilestonesMessage = "You have no milestones logged."

// Feature represents the personal stats feature
type Feature struct {
	ledger interfaces.LedgerService
	now    func() time.Time
}

// NewFeature creates a new stats feature instance
func NewFeature(ledger interfaces.LedgerService) *Feature {
	return &Feature{
		ledger: ledger,
		now:    time.Now,
	}
}

// HandleCommand handles the /my_stats command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring stats response: %v", err)
		return
	}

	params, err := f.buildReply(context.Background(), common.InteractionUserID(i), common.InteractionDisplayName(i))
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}
	common.FollowUp(s, i, params)
}

func (f *Feature) buildReply(ctx context.Context, userID, displayName string) (*discordgo.WebhookParams, error) {
	stats, err := f.ledger.PersonalStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for %s: %w", userID, err)
	}
	if len(stats) == 0 {
		return &discordgo.WebhookParams{Content: NoMilestonesMessage}, nil
	}
	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{BuildStatsEmbed(displayName, stats, f.now())},
	}, nil
}
