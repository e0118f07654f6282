package common

import (
	"testing"

	"milestonebot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestFormatPlayerSummary(t *testing.T) {
	p := entities.PlayerSummary{DiscordID: "1", Total: 7, Bronze: 3, Silver: 2, Gold: 1, Diamond: 1}

	expected := "Milestones: 7\n- Bronze: 3\n- Silver: 2\n- Gold: 1\n- Diamond: 1"
	assert.Equal(t, expected, FormatPlayerSummary(p))
}

func TestFormatTierLines_EnumerationOrder(t *testing.T) {
	counts := entities.NewTierCounts()
	counts[entities.TierDiamond] = 4

	expected := "- Bronze: 0\n- Silver: 0\n- Gold: 0\n- Diamond: 4"
	assert.Equal(t, expected, FormatTierLines(func(t entities.Tier) int { return counts[t] }))
}

func TestFormatRankAndKey(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"rank", FormatRank(2, "rex"), "2. rex"},
		{"milestone key", FormatMilestoneKey("Allosaurus", entities.TierGold), "Allosaurus (Gold)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
