package cmd

import (
	"context"
	"fmt"
	"time"

	"milestonebot/application"
	"milestonebot/bot"
	"milestonebot/config"
	"milestonebot/domain/entities"
	"milestonebot/domain/interfaces"
	"milestonebot/domain/services"
	"milestonebot/infrastructure"
	"milestonebot/infrastructure/observability"
	"milestonebot/repository"

	log "github.com/sirupsen/logrus"
)

const natsConnectTimeout = 10 * time.Second

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	configureLogging(cfg.LogLevel, cfg.Environment)

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"backend":     cfg.LedgerBackend,
	}).Info("Starting milestone bot...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics, continuing without them")
	}
	metrics := observability.GetMetrics()

	store, closeStore, err := repository.NewLedgerStore(ctx, cfg, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger store: %w", err)
	}
	defer closeStore()

	publisher, closePublisher := newEventPublisher(ctx, cfg, metrics)
	defer closePublisher()

	ledger := services.NewLedgerService(store, publisher)

	catalog := infrastructure.NewCatalogSource(entities.DefaultCatalog())
	if cfg.CatalogPath != "" {
		if err := catalog.Reload(cfg.CatalogPath); err != nil {
			return err
		}
		stopWatch, err := catalog.Watch(ctx, cfg.CatalogPath)
		if err != nil {
			log.WithError(err).Warn("Species catalog will not be reloaded on change")
		} else {
			defer stopWatch()
		}
	}

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.GuildID,
		LogChannelID:    cfg.LogChannelID,
		LeaderboardSize: cfg.LeaderboardSize,
	}, ledger, catalog, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	worker := application.NewLeaderboardWorker(
		ledger,
		discordBot.LeaderboardPoster(),
		publisher,
		metrics,
		cfg.LogChannelID,
		cfg.LeaderboardSize,
	)
	stopWorker := worker.Start(ctx, cfg.LeaderboardHour)

	debugAPI := bot.NewDebugAPI(ledger, worker, cfg.LeaderboardSize)
	if err := debugAPI.Start(cfg.DebugAPIPort); err != nil {
		log.Warnf("Failed to start debug API on port %d: %v", cfg.DebugAPIPort, err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := debugAPI.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error stopping debug API: %v", err)
	}

	stopWorker()
	log.Info("Leaderboard worker stopped")

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.Errorf("Error shutting down metrics: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}

// newEventPublisher connects to NATS when configured. Connection failures
// fall back to the no-op publisher since events are best effort.
func newEventPublisher(ctx context.Context, cfg *config.Config, metrics *observability.MetricsProvider) (interfaces.EventPublisher, func()) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, milestone events disabled")
		return infrastructure.NewNoopEventPublisher(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, natsConnectTimeout)
	defer cancel()

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(connectCtx); err != nil {
		log.WithError(err).Warn("Failed to connect to NATS, milestone events disabled")
		return infrastructure.NewNoopEventPublisher(), func() {}
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.MilestoneStreamName, mapper.GetAllSubjects()); err != nil {
		log.WithError(err).Warn("Failed to ensure NATS stream, milestone events disabled")
		_ = client.Close()
		return infrastructure.NewNoopEventPublisher(), func() {}
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Errorf("Error closing NATS connection: %v", err)
		}
	}
	return infrastructure.NewNATSEventPublisher(client, mapper, metrics), closeFn
}
