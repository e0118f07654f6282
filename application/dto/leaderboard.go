package dto

import (
	"time"

	"milestonebot/domain/entities"
)

// LeaderboardPostDTO contains everything needed to post the daily leaderboard
type LeaderboardPostDTO struct {
	ChannelID   string
	Players     []entities.PlayerSummary
	GeneratedAt time.Time
}
