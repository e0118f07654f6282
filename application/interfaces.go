package application

import (
	"context"

	"milestonebot/application/dto"
)

// LeaderboardPoster posts a ranked leaderboard to a Discord channel.
// It keeps the worker independent of the Discord API.
type LeaderboardPoster interface {
	PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error
}
