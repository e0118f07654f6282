package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"milestonebot/application/dto"
	"milestonebot/domain/events"
	"milestonebot/domain/interfaces"
	"milestonebot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// LeaderboardWorker posts the top players once a day
type LeaderboardWorker struct {
	ledger    interfaces.LedgerService
	poster    LeaderboardPoster
	publisher interfaces.EventPublisher
	metrics   *observability.MetricsProvider
	channelID string
	size      int

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewLeaderboardWorker creates a new leaderboard worker
func NewLeaderboardWorker(
	ledger interfaces.LedgerService,
	poster LeaderboardPoster,
	publisher interfaces.EventPublisher,
	metrics *observability.MetricsProvider,
	channelID string,
	size int,
) *LeaderboardWorker {
	return &LeaderboardWorker{
		ledger:    ledger,
		poster:    poster,
		publisher: publisher,
		metrics:   metrics,
		channelID: channelID,
		size:      size,
		now:       time.Now,
		after:     time.After,
	}
}

// NextRun returns the first instant strictly after now at hour:00 UTC
func NextRun(now time.Time, hour int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start runs the daily broadcast loop until ctx is cancelled or the returned
// stop func is called. Stop blocks until the loop has exited.
func (w *LeaderboardWorker) Start(ctx context.Context, hour int) func() {
	stopChan := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		log.Infof("Leaderboard worker started, posting daily at %02d:00 UTC", hour)

		for {
			now := w.now()
			wait := NextRun(now, hour).Sub(now)
			log.WithField("wait", wait).Debug("Leaderboard worker waiting for next run")

			select {
			case <-ctx.Done():
				log.Info("Leaderboard worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Leaderboard worker shutting down (stop requested)...")
				return
			case <-w.after(wait):
				if err := w.RunOnce(ctx); err != nil {
					log.WithError(err).Error("Daily leaderboard broadcast failed")
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopChan)
			<-done
		})
	}
}

// RunOnce computes the leaderboard and posts it to the announcement channel
func (w *LeaderboardWorker) RunOnce(ctx context.Context) error {
	players, err := w.ledger.LeaderboardTopN(ctx, w.size)
	if err != nil {
		w.metrics.RecordBroadcast(observability.OutcomeError)
		return fmt.Errorf("failed to compute leaderboard: %w", err)
	}

	post := dto.LeaderboardPostDTO{
		ChannelID:   w.channelID,
		Players:     players,
		GeneratedAt: w.now().UTC(),
	}
	if err := w.poster.PostLeaderboard(ctx, post); err != nil {
		w.metrics.RecordBroadcast(observability.OutcomeError)
		return fmt.Errorf("failed to post leaderboard: %w", err)
	}
	w.metrics.RecordBroadcast(observability.OutcomeSuccess)

	log.WithFields(log.Fields{
		"channel_id": w.channelID,
		"players":    len(players),
		"source":     "daily_worker",
	}).Info("Daily leaderboard posted")

	if w.publisher != nil {
		if err := w.publisher.Publish(events.LeaderboardBroadcastEvent{
			ChannelID:   w.channelID,
			Players:     len(players),
			BroadcastAt: post.GeneratedAt,
		}); err != nil {
			log.WithError(err).Warn("Failed to publish leaderboard broadcast event")
		}
	}
	return nil
}
