package interfaces

import (
	"context"
	"time"

	"milestonebot/domain/entities"
)

// LedgerService defines the milestone ledger operations
type LedgerService interface {
	// SubmitMilestone appends a new entry stamped with now
	SubmitMilestone(ctx context.Context, discordID, displayName, species string, tier entities.Tier, sheetURL string, now time.Time) (*entities.Entry, error)

	// RemoveLatestMilestone deletes the most recently appended entry for the (user, species, tier) key
	RemoveLatestMilestone(ctx context.Context, discordID, species string, tier entities.Tier) (*entities.Entry, error)

	// LeaderboardTopN returns the n players with the highest totals
	LeaderboardTopN(ctx context.Context, n int) ([]entities.PlayerSummary, error)

	// PersonalStats groups a user's entries by species and tier
	PersonalStats(ctx context.Context, discordID string) (entities.PersonalStats, error)
}

// CatalogProvider returns the species catalog currently in effect
type CatalogProvider interface {
	Catalog() *entities.Catalog
}
