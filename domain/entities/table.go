package entities

// Table names in the ledger spreadsheet
const (
	EntriesTable      = "Entries"
	PlayerTotalsTable = "PlayerTotals"
)

// Physical row positions are 1-based and the header occupies the first row
const (
	HeaderRowIndex    = 1
	FirstDataRowIndex = 2
)

// EntriesHeader is the exact column order of the Entries table
var EntriesHeader = []string{"Timestamp", "DiscordID", "DiscordName", "Species", "Tier", "SheetURL"}

// PlayerTotalsHeader is the column order of the PlayerTotals table
var PlayerTotalsHeader = []string{"DiscordID", "Bronze", "Silver", "Gold", "Diamond", "Total"}

// Row is a single data row keyed by column name
type Row struct {
	Index  int // physical position, header is row 1
	Values map[string]string
}

// Get returns the value of a column, or "" when absent
func (r Row) Get(column string) string {
	return r.Values[column]
}

// Table is a snapshot of one worksheet in stored order
type Table struct {
	Name   string
	Header []string
	Rows   []Row
}

// NewTable builds a table from a header and raw cell values.
// Rows shorter than the header are padded with empty strings and extra cells are dropped.
func NewTable(name string, header []string, cells [][]string) *Table {
	table := &Table{
		Name:   name,
		Header: append([]string(nil), header...),
		Rows:   make([]Row, 0, len(cells)),
	}
	for i, raw := range cells {
		values := make(map[string]string, len(header))
		for col, key := range header {
			if col < len(raw) {
				values[key] = raw[col]
			} else {
				values[key] = ""
			}
		}
		table.Rows = append(table.Rows, Row{
			Index:  FirstDataRowIndex + i,
			Values: values,
		})
	}
	return table
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}
