package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"milestonebot/domain/entities"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore implements LedgerStore on a Google spreadsheet with one worksheet per table
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64 // worksheet title -> numeric sheet id
}

// NewSheetsStore authenticates with a service account credential file
func NewSheetsStore(ctx context.Context, spreadsheetID, credentialsPath string) (*SheetsStore, error) {
	return NewSheetsStoreWithOptions(ctx, spreadsheetID,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// NewSheetsStoreWithOptions creates a store with explicit client options
func NewSheetsStoreWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}, nil
}

// AppendRow appends one row after the last data row of the worksheet
func (s *SheetsStore) AppendRow(ctx context.Context, table string, values []string) error {
	if table == entities.PlayerTotalsTable {
		return entities.NewStoreError("append", table, entities.ErrReadOnlyTable)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, quoteSheet(table), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{cells},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return entities.NewStoreError("append", table, err)
	}
	return nil
}

// ReadAll reads the whole worksheet. The first row is the header.
func (s *SheetsStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(table)).
		MajorDimension("ROWS").Context(ctx).Do()
	if err != nil {
		return nil, entities.NewStoreError("read_all", table, err)
	}

	header := defaultHeader(table)
	var cells [][]string
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = strings.TrimSpace(fmt.Sprint(cell))
		}
		if i == 0 {
			if len(row) > 0 {
				header = row
			}
			continue
		}
		cells = append(cells, row)
	}

	return entities.NewTable(table, header, cells), nil
}

// DeleteRow removes one physical row; the rows below shift up
func (s *SheetsStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	if table == entities.PlayerTotalsTable {
		return entities.NewStoreError("delete_row", table, entities.ErrReadOnlyTable)
	}
	if rowIndex < entities.FirstDataRowIndex {
		return entities.NewStoreError("delete_row", table,
			fmt.Errorf("%w: %d", entities.ErrRowOutOfRange, rowIndex))
	}

	// deleteDimension silently clears rows past the data, so check the row exists
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("%s!%d:%d", quoteSheet(table), rowIndex, rowIndex)).
		Context(ctx).Do()
	if err != nil {
		return entities.NewStoreError("delete_row", table, err)
	}
	if len(resp.Values) == 0 {
		return entities.NewStoreError("delete_row", table,
			fmt.Errorf("%w: %d", entities.ErrRowOutOfRange, rowIndex))
	}

	sheetID, err := s.sheetID(ctx, table)
	if err != nil {
		return entities.NewStoreError("delete_row", table, err)
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(rowIndex - 1),
					EndIndex:        int64(rowIndex),
					ForceSendFields: []string{"SheetId"},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return entities.NewStoreError("delete_row", table, err)
	}

	log.WithFields(log.Fields{
		"table":     table,
		"row_index": rowIndex,
	}).Debug("Deleted spreadsheet row")
	return nil
}

// sheetID resolves a worksheet title to its numeric id, caching every title seen
func (s *SheetsStore) sheetID(ctx context.Context, title string) (int64, error) {
	s.mu.Lock()
	id, ok := s.sheetIDs[title]
	s.mu.Unlock()
	if ok {
		return id, nil
	}

	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to load spreadsheet metadata: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		s.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
	}

	id, ok = s.sheetIDs[title]
	if !ok {
		return 0, fmt.Errorf("worksheet %q not found", title)
	}
	return id, nil
}

func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func defaultHeader(table string) []string {
	switch table {
	case entities.EntriesTable:
		return entities.EntriesHeader
	case entities.PlayerTotalsTable:
		return entities.PlayerTotalsHeader
	default:
		return nil
	}
}
