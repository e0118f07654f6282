package bot

import (
	"fmt"

	"milestonebot/application"
	"milestonebot/bot/common"
	"milestonebot/bot/features/leaderboard"
	"milestonebot/bot/features/milestones"
	"milestonebot/bot/features/stats"
	"milestonebot/domain/interfaces"
	"milestonebot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	LogChannelID    string
	LeaderboardSize int
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session
	metrics *observability.MetricsProvider

	milestones  *milestones.Feature
	leaderboard *leaderboard.Feature
	stats       *stats.Feature
}

// New creates a bot, opens the gateway connection and registers commands
func New(config Config, ledger interfaces.LedgerService, catalog interfaces.CatalogProvider, metrics *observability.MetricsProvider) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:      config,
		session:     dg,
		metrics:     metrics,
		milestones:  milestones.NewFeature(dg, ledger, catalog, config.LogChannelID),
		leaderboard: leaderboard.NewFeature(dg, ledger, catalog, config.LeaderboardSize),
		stats:       stats.NewFeature(ledger),
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleInteractions)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// LeaderboardPoster returns the poster used by the daily leaderboard worker
func (b *Bot) LeaderboardPoster() application.LeaderboardPoster {
	return b.leaderboard
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Discord session ready")
}

// handleInteractions routes slash commands and autocomplete requests
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		switch i.ApplicationCommandData().Name {
		case common.CommandMilestone, common.CommandRemoveMilestone:
			b.milestones.HandleAutocomplete(s, i)
		}
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	b.metrics.RecordCommand(name)

	log.WithFields(log.Fields{
		"command":  name,
		"user_id":  common.InteractionUserID(i),
		"guild_id": i.GuildID,
	}).Debug("Handling command")

	switch name {
	case common.CommandMilestone:
		b.milestones.HandleSubmit(s, i)
	case common.CommandLeaderboard:
		b.leaderboard.HandleCommand(s, i)
	case common.CommandRemoveMilestone:
		b.milestones.HandleRemove(s, i)
	case common.CommandMyStats:
		b.stats.HandleCommand(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}
