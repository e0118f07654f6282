package repository

import (
	"context"
	"testing"

	"milestonebot/domain/entities"
	"milestonebot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	store := NewPostgresStore(testDB.DB)
	ctx := context.Background()

	entries := []*entities.Entry{
		testutil.CreateTestEntry("100", "Triceratops", entities.TierGold),
		testutil.CreateTestEntry("200", "Allosaurus", entities.TierBronze),
		testutil.CreateTestEntry("100", "Triceratops", entities.TierGold),
		testutil.CreateTestEntry("200", "Allosaurus", entities.TierDiamond),
		testutil.CreateTestEntry("200", "Stegosaurus", entities.TierSilver),
	}
	for _, e := range entries {
		require.NoError(t, store.AppendRow(ctx, entities.EntriesTable, e.Values()))
	}

	t.Run("read entries in insertion order", func(t *testing.T) {
		table, err := store.ReadAll(ctx, entities.EntriesTable)
		require.NoError(t, err)
		require.Equal(t, len(entries), table.Len())
		for i, row := range table.Rows {
			assert.Equal(t, entities.FirstDataRowIndex+i, row.Index)
			assert.Equal(t, entries[i].Values()[3], row.Get("Species"))
		}
	})

	t.Run("player totals view", func(t *testing.T) {
		table, err := store.ReadAll(ctx, entities.PlayerTotalsTable)
		require.NoError(t, err)
		require.Equal(t, 2, table.Len())

		first, invalid := entities.PlayerSummaryFromRow(table.Rows[0])
		assert.Empty(t, invalid)
		assert.Equal(t, entities.PlayerSummary{DiscordID: "100", Gold: 2, Total: 2}, first)

		second, _ := entities.PlayerSummaryFromRow(table.Rows[1])
		assert.Equal(t, entities.PlayerSummary{DiscordID: "200", Bronze: 1, Silver: 1, Diamond: 1, Total: 3}, second)
	})

	t.Run("delete by position shifts rows", func(t *testing.T) {
		require.NoError(t, store.DeleteRow(ctx, entities.EntriesTable, 3))

		table, err := store.ReadAll(ctx, entities.EntriesTable)
		require.NoError(t, err)
		require.Equal(t, len(entries)-1, table.Len())
		assert.Equal(t, "Triceratops", table.Rows[1].Get("Species"))
		assert.Equal(t, 3, table.Rows[1].Index)
	})

	t.Run("delete out of range", func(t *testing.T) {
		err := store.DeleteRow(ctx, entities.EntriesTable, 50)
		assert.ErrorIs(t, err, entities.ErrRowOutOfRange)

		err = store.DeleteRow(ctx, entities.EntriesTable, 1)
		assert.ErrorIs(t, err, entities.ErrRowOutOfRange)
	})

	t.Run("player totals is read-only", func(t *testing.T) {
		err := store.AppendRow(ctx, entities.PlayerTotalsTable, []string{"1", "0", "0", "0", "0", "0"})
		assert.ErrorIs(t, err, entities.ErrReadOnlyTable)
	})
}
