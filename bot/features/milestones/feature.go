package milestones

import (
	"time"

	"milestonebot/bot/common"
	"milestonebot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /milestone, /remove_milestone and species autocomplete
type Feature struct {
	session   *discordgo.Session
	sender    common.ChannelSender
	ledger    interfaces.LedgerService
	catalog   interfaces.CatalogProvider
	channelID string
	now       func() time.Time
}

// NewFeature creates a new milestones feature instance
func NewFeature(session *discordgo.Session, ledger interfaces.LedgerService, catalog interfaces.CatalogProvider, channelID string) *Feature {
	return &Feature{
		session:   session,
		sender:    session,
		ledger:    ledger,
		catalog:   catalog,
		channelID: channelID,
		now:       time.Now,
	}
}
