package repository

import (
	"context"
	"fmt"
	"sync"

	"milestonebot/domain/entities"
)

// MemoryStore keeps ledger tables in process memory.
// PlayerTotals is never derived here; callers seed it with SeedTable.
type MemoryStore struct {
	mu      sync.RWMutex
	headers map[string][]string
	rows    map[string][][]string
	owned   map[string]bool
}

// NewMemoryStore creates an empty store with the Entries and PlayerTotals tables
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		headers: map[string][]string{
			entities.EntriesTable:      entities.EntriesHeader,
			entities.PlayerTotalsTable: entities.PlayerTotalsHeader,
		},
		rows: map[string][][]string{
			entities.EntriesTable:      {},
			entities.PlayerTotalsTable: {},
		},
		owned: map[string]bool{
			entities.EntriesTable: true,
		},
	}
}

// SeedTable replaces every data row of a table, including read-only ones
func (s *MemoryStore) SeedTable(table string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.headers[table]; !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	copied := make([][]string, 0, len(rows))
	for _, row := range rows {
		copied = append(copied, append([]string(nil), row...))
	}
	s.rows[table] = copied
	return nil
}

// AppendRow adds one row at the end of the table
func (s *MemoryStore) AppendRow(ctx context.Context, table string, values []string) error {
	if err := ctx.Err(); err != nil {
		return entities.NewStoreError("append", table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.headers[table]; !ok {
		return entities.NewStoreError("append", table, fmt.Errorf("unknown table %q", table))
	}
	if !s.owned[table] {
		return entities.NewStoreError("append", table, entities.ErrReadOnlyTable)
	}
	s.rows[table] = append(s.rows[table], append([]string(nil), values...))
	return nil
}

// ReadAll returns a snapshot of the table in stored order
func (s *MemoryStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, entities.NewStoreError("read_all", table, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	header, ok := s.headers[table]
	if !ok {
		return nil, entities.NewStoreError("read_all", table, fmt.Errorf("unknown table %q", table))
	}
	return entities.NewTable(table, header, s.rows[table]), nil
}

// DeleteRow removes the data row at a 1-based physical index
func (s *MemoryStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	if err := ctx.Err(); err != nil {
		return entities.NewStoreError("delete_row", table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.headers[table]; !ok {
		return entities.NewStoreError("delete_row", table, fmt.Errorf("unknown table %q", table))
	}
	if !s.owned[table] {
		return entities.NewStoreError("delete_row", table, entities.ErrReadOnlyTable)
	}

	rows := s.rows[table]
	pos := rowIndex - entities.FirstDataRowIndex
	if pos < 0 || pos >= len(rows) {
		return entities.NewStoreError("delete_row", table,
			fmt.Errorf("%w: %d (last row is %d)", entities.ErrRowOutOfRange, rowIndex, entities.HeaderRowIndex+len(rows)))
	}

	s.rows[table] = append(rows[:pos:pos], rows[pos+1:]...)
	return nil
}
