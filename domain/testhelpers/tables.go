package testhelpers

import "milestonebot/domain/entities"

// EntriesTable builds an Entries snapshot from raw rows
func EntriesTable(rows ...[]string) *entities.Table {
	return entities.NewTable(entities.EntriesTable, entities.EntriesHeader, rows)
}

// PlayerTotalsTable builds a PlayerTotals snapshot from raw rows
func PlayerTotalsTable(rows ...[]string) *entities.Table {
	return entities.NewTable(entities.PlayerTotalsTable, entities.PlayerTotalsHeader, rows)
}
