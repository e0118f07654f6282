package interfaces

import (
	"context"

	"milestonebot/domain/entities"
)

// LedgerStore is the remote tabular store holding the Entries and PlayerTotals tables.
// Row positions are 1-based with the header at row 1. Implementations return
// errors matching entities.ErrStoreUnavailable and never retry on their own.
type LedgerStore interface {
	// AppendRow appends one row at the end of the table, preserving column order
	AppendRow(ctx context.Context, table string, values []string) error

	// ReadAll returns the header and every row in stored order
	ReadAll(ctx context.Context, table string) (*entities.Table, error)

	// DeleteRow removes exactly one physical row; following rows shift up by one
	DeleteRow(ctx context.Context, table string, rowIndex int) error
}
