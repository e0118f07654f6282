package repository

import (
	"context"
	"fmt"
	"strconv"

	"milestonebot/database"
	"milestonebot/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable is the subset of pgx shared by pools and transactions
type Queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements LedgerStore on the entries table and the player_totals view.
// Row positions are derived from the bigserial id order.
type PostgresStore struct {
	q Queryable
}

// NewPostgresStore creates a new postgres backed ledger store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{q: db.Pool}
}

// AppendRow inserts one entry; values follow the Entries column order
func (s *PostgresStore) AppendRow(ctx context.Context, table string, values []string) error {
	if table == entities.PlayerTotalsTable {
		return entities.NewStoreError("append", table, entities.ErrReadOnlyTable)
	}
	if table != entities.EntriesTable {
		return entities.NewStoreError("append", table, fmt.Errorf("unknown table %q", table))
	}
	if len(values) > len(entities.EntriesHeader) {
		return entities.NewStoreError("append", table,
			fmt.Errorf("row has %d cells, table has %d columns", len(values), len(entities.EntriesHeader)))
	}

	cells := make([]string, len(entities.EntriesHeader))
	copy(cells, values)

	query := `
		INSERT INTO entries (submitted_at, discord_id, discord_name, species, tier, sheet_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.q.Exec(ctx, query, cells[0], cells[1], cells[2], cells[3], cells[4], cells[5]); err != nil {
		return entities.NewStoreError("append", table, fmt.Errorf("failed to insert entry: %w", err))
	}
	return nil
}

// ReadAll returns the table in insertion order
func (s *PostgresStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	switch table {
	case entities.EntriesTable:
		return s.readEntries(ctx)
	case entities.PlayerTotalsTable:
		return s.readPlayerTotals(ctx)
	default:
		return nil, entities.NewStoreError("read_all", table, fmt.Errorf("unknown table %q", table))
	}
}

// DeleteRow deletes the entry at a physical position in a single statement
func (s *PostgresStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	if table == entities.PlayerTotalsTable {
		return entities.NewStoreError("delete_row", table, entities.ErrReadOnlyTable)
	}
	if table != entities.EntriesTable {
		return entities.NewStoreError("delete_row", table, fmt.Errorf("unknown table %q", table))
	}
	if rowIndex < entities.FirstDataRowIndex {
		return entities.NewStoreError("delete_row", table,
			fmt.Errorf("%w: %d", entities.ErrRowOutOfRange, rowIndex))
	}

	query := `
		DELETE FROM entries
		WHERE id = (SELECT id FROM entries ORDER BY id OFFSET $1 LIMIT 1)
	`
	tag, err := s.q.Exec(ctx, query, rowIndex-entities.FirstDataRowIndex)
	if err != nil {
		return entities.NewStoreError("delete_row", table, fmt.Errorf("failed to delete entry: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return entities.NewStoreError("delete_row", table,
			fmt.Errorf("%w: %d", entities.ErrRowOutOfRange, rowIndex))
	}
	return nil
}

func (s *PostgresStore) readEntries(ctx context.Context) (*entities.Table, error) {
	query := `
		SELECT submitted_at, discord_id, discord_name, species, tier, sheet_url
		FROM entries
		ORDER BY id
	`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, entities.NewStoreError("read_all", entities.EntriesTable, fmt.Errorf("failed to query entries: %w", err))
	}
	defer rows.Close()

	var cells [][]string
	for rows.Next() {
		row := make([]string, 6)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5]); err != nil {
			return nil, entities.NewStoreError("read_all", entities.EntriesTable, fmt.Errorf("failed to scan entry: %w", err))
		}
		cells = append(cells, row)
	}
	if err := rows.Err(); err != nil {
		return nil, entities.NewStoreError("read_all", entities.EntriesTable, fmt.Errorf("failed to iterate entries: %w", err))
	}

	return entities.NewTable(entities.EntriesTable, entities.EntriesHeader, cells), nil
}

func (s *PostgresStore) readPlayerTotals(ctx context.Context) (*entities.Table, error) {
	query := `
		SELECT discord_id, bronze, silver, gold, diamond, total
		FROM player_totals
		ORDER BY first_id
	`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, entities.NewStoreError("read_all", entities.PlayerTotalsTable, fmt.Errorf("failed to query player totals: %w", err))
	}
	defer rows.Close()

	var cells [][]string
	for rows.Next() {
		var discordID string
		var bronze, silver, gold, diamond, total int64
		if err := rows.Scan(&discordID, &bronze, &silver, &gold, &diamond, &total); err != nil {
			return nil, entities.NewStoreError("read_all", entities.PlayerTotalsTable, fmt.Errorf("failed to scan player totals: %w", err))
		}
		cells = append(cells, []string{
			discordID,
			strconv.FormatInt(bronze, 10),
			strconv.FormatInt(silver, 10),
			strconv.FormatInt(gold, 10),
			strconv.FormatInt(diamond, 10),
			strconv.FormatInt(total, 10),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, entities.NewStoreError("read_all", entities.PlayerTotalsTable, fmt.Errorf("failed to iterate player totals: %w", err))
	}

	return entities.NewTable(entities.PlayerTotalsTable, entities.PlayerTotalsHeader, cells), nil
}
