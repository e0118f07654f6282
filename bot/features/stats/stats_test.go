package stats

import (
	"errors"
	"testing"
	"time"

	"milestonebot/domain/entities"
	"milestonebot/domain/testhelpers"
	"milestonebot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildStatsEmbed(t *testing.T) {
	allo := entities.NewTierCounts()
	allo[entities.TierGold] = 1
	trex := entities.NewTierCounts()
	trex[entities.TierBronze] = 2
	trex[entities.TierDiamond] = 1

	stats := entities.PersonalStats{"Tyrannosaurus": trex, "Allosaurus": allo}

	embed := BuildStatsEmbed("Rex", stats, testutil.FixedTime)

	assert.Equal(t, "Rex's Milestone Stats", embed.Title)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Allosaurus", embed.Fields[0].Name)
	assert.Equal(t, "- Bronze: 0\n- Silver: 0\n- Gold: 1\n- Diamond: 0", embed.Fields[0].Value)
	assert.Equal(t, "Tyrannosaurus", embed.Fields[1].Name)
	assert.Equal(t, "- Bronze: 2\n- Silver: 0\n- Gold: 0\n- Diamond: 1", embed.Fields[1].Value)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Total milestones: 4", embed.Footer.Text)
}

func TestFeature_BuildReply(t *testing.T) {
	newFeature := func(ledger *testhelpers.MockLedgerService) *Feature {
		return &Feature{ledger: ledger, now: func() time.Time { return testutil.FixedTime }}
	}

	t.Run("no entries", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		ledger.On("PersonalStats", mock.Anything, "42").Return(entities.PersonalStats{}, nil)

		params, err := newFeature(ledger).buildReply(t.Context(), "42", "Rex")

		require.NoError(t, err)
		assert.Equal(t, NoMilestonesMessage, params.Content)
		assert.Empty(t, params.Embeds)
	})

	t.Run("with entries", func(t *testing.T) {
		counts := entities.NewTierCounts()
		counts[entities.TierSilver] = 3
		ledger := new(testhelpers.MockLedgerService)
		ledger.On("PersonalStats", mock.Anything, "42").Return(entities.PersonalStats{"Stegosaurus": counts}, nil)

		params, err := newFeature(ledger).buildReply(t.Context(), "42", "Rex")

		require.NoError(t, err)
		require.Len(t, params.Embeds, 1)
		assert.Equal(t, "Stegosaurus", params.Embeds[0].Fields[0].Name)
	})

	t.Run("store failure", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		storeErr := entities.NewStoreError("read_all", entities.EntriesTable, errors.New("timeout"))
		ledger.On("PersonalStats", mock.Anything, "42").Return(nil, storeErr)

		_, err := newFeature(ledger).buildReply(t.Context(), "42", "Rex")

		assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
	})
}
