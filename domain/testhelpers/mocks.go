package testhelpers

import (
	"context"
	"time"

	"milestonebot/domain/entities"
	"milestonebot/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockLedgerStore is a mock implementation of LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) AppendRow(ctx context.Context, table string, values []string) error {
	args := m.Called(ctx, table, values)
	return args.Error(0)
}

func (m *MockLedgerStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Table), args.Error(1)
}

func (m *MockLedgerStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	args := m.Called(ctx, table, rowIndex)
	return args.Error(0)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) SubmitMilestone(ctx context.Context, discordID, displayName, species string, tier entities.Tier, sheetURL string, now time.Time) (*entities.Entry, error) {
	args := m.Called(ctx, discordID, displayName, species, tier, sheetURL, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *MockLedgerService) RemoveLatestMilestone(ctx context.Context, discordID, species string, tier entities.Tier) (*entities.Entry, error) {
	args := m.Called(ctx, discordID, species, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *MockLedgerService) LeaderboardTopN(ctx context.Context, n int) ([]entities.PlayerSummary, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PlayerSummary), args.Error(1)
}

func (m *MockLedgerService) PersonalStats(ctx context.Context, discordID string) (entities.PersonalStats, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.PersonalStats), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
