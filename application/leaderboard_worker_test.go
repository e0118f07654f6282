package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"milestonebot/application/dto"
	"milestonebot/domain/entities"
	"milestonebot/domain/events"
	"milestonebot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingPoster struct {
	posts chan dto.LeaderboardPostDTO
	err   error
}

func (p *recordingPoster) PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error {
	p.posts <- post
	return p.err
}

// manualClock hands out wait durations and lets the test decide when they elapse
type manualClock struct {
	now   time.Time
	waits chan time.Duration
	fire  chan time.Time
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{
		now:   now,
		waits: make(chan time.Duration, 8),
		fire:  make(chan time.Time),
	}
}

func (c *manualClock) install(w *LeaderboardWorker) {
	w.now = func() time.Time { return c.now }
	w.after = func(d time.Duration) <-chan time.Time {
		c.waits <- d
		return c.fire
	}
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for worker")
		var zero T
		return zero
	}
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
			hour: 14,
			want: time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight rolls to tomorrow",
			now:  time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the hour waits a day",
			now:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non utc input",
			now:  time.Date(2025, 6, 15, 20, 0, 0, 0, time.FixedZone("CDT", -5*3600)),
			hour: 0,
			want: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRun(tt.now, tt.hour))
		})
	}
}

func TestLeaderboardWorker_PostsDailyAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	players := []entities.PlayerSummary{{DiscordID: "B", Total: 30}, {DiscordID: "A", Total: 10}}
	ledger := new(testhelpers.MockLedgerService)
	ledger.On("LeaderboardTopN", mock.Anything, 5).Return(players, nil)

	publisher := new(testhelpers.MockEventPublisher)
	publisher.On("Publish", mock.MatchedBy(func(e events.LeaderboardBroadcastEvent) bool {
		return e.ChannelID == "announce" && e.Players == 2
	})).Return(nil)

	poster := &recordingPoster{posts: make(chan dto.LeaderboardPostDTO, 1)}
	worker := NewLeaderboardWorker(ledger, poster, publisher, nil, "announce", 5)
	clock := newManualClock(time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC))
	clock.install(worker)

	stop := worker.Start(context.Background(), 0)

	assert.Equal(t, 90*time.Minute, receive(t, clock.waits))
	clock.fire <- clock.now

	post := receive(t, poster.posts)
	assert.Equal(t, "announce", post.ChannelID)
	assert.Equal(t, players, post.Players)

	// the loop schedules the following day after posting
	receive(t, clock.waits)
	stop()
	stop()

	ledger.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestLeaderboardWorker_ContinuesAfterErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	ledger := new(testhelpers.MockLedgerService)
	ledger.On("LeaderboardTopN", mock.Anything, 5).Return(nil, entities.ErrStoreUnavailable).Once()
	ledger.On("LeaderboardTopN", mock.Anything, 5).Return([]entities.PlayerSummary{}, nil).Once()

	poster := &recordingPoster{posts: make(chan dto.LeaderboardPostDTO, 1), err: errors.New("missing access")}
	worker := NewLeaderboardWorker(ledger, poster, nil, nil, "announce", 5)
	clock := newManualClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	clock.install(worker)

	ctx, cancel := context.WithCancel(context.Background())
	stop := worker.Start(ctx, 0)

	receive(t, clock.waits)
	clock.fire <- clock.now // store failure, nothing posted

	receive(t, clock.waits)
	clock.fire <- clock.now // poster failure
	receive(t, poster.posts)

	receive(t, clock.waits)
	cancel()
	stop()

	ledger.AssertExpectations(t)
}

func TestLeaderboardWorker_WaitUsesSingleClockReading(t *testing.T) {
	defer goleak.VerifyNone(t)

	worker := NewLeaderboardWorker(new(testhelpers.MockLedgerService), &recordingPoster{}, nil, nil, "announce", 5)
	clock := newManualClock(time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC))
	clock.install(worker)

	// every reading moves the clock forward a minute
	readings := 0
	worker.now = func() time.Time {
		readings++
		return clock.now.Add(time.Duration(readings-1) * time.Minute)
	}

	stop := worker.Start(context.Background(), 0)
	assert.Equal(t, time.Hour, receive(t, clock.waits))
	stop()
}

func TestLeaderboardWorker_RunOnce(t *testing.T) {
	ledger := new(testhelpers.MockLedgerService)
	ledger.On("LeaderboardTopN", mock.Anything, 3).Return(nil, errors.New("boom"))

	poster := &recordingPoster{posts: make(chan dto.LeaderboardPostDTO, 1)}
	worker := NewLeaderboardWorker(ledger, poster, nil, nil, "announce", 3)

	err := worker.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compute leaderboard")
	assert.Empty(t, poster.posts)
}
