package leaderboard

import (
	"context"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds parallel guild member requests
const maxConcurrentLookups = 5

// ResolveNames looks up every player's display name concurrently.
// Failed lookups fall back to "User <id>", so the result always has one
// name per player in the same order.
func ResolveNames(ctx context.Context, lookup common.MemberLookup, guildID string, players []entities.PlayerSummary) []string {
	names := make([]string, len(players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, p := range players {
		g.Go(func() error {
			if gctx.Err() != nil {
				names[i] = common.FallbackName(p.DiscordID)
				return nil
			}
			names[i] = common.GetDisplayName(lookup, guildID, p.DiscordID)
			return nil
		})
	}
	_ = g.Wait()

	return names
}
