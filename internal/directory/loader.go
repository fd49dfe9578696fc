package directory

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samchinmaya/querydesk/internal/domain"
)

// Fallback column positions (zero-based) used when the header row does not
// name the expected columns.
const (
	fallbackNameCol  = 0
	fallbackEmailCol = 1
	fallbackIDCol    = 2
)

// LoadXLSX reads client records from the first worksheet of an xlsx file.
//
// Columns are discovered by scanning the header row for the substrings
// "client name", "client mail" and "customer id"/"customerid"
// (case-insensitive); columns that are not found keep their positional
// fallback. Rows where all three fields are blank are skipped. Duplicate
// customer ids are returned as-is; Directory.New resolves them first-wins.
func LoadXLSX(path string) ([]domain.ClientRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s has no worksheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	nameCol, emailCol, idCol := discoverColumns(rows[0])

	var records []domain.ClientRecord
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		email := cellAt(row, emailCol)
		id := cellAt(row, idCol)

		if name == "" && email == "" && id == "" {
			continue
		}

		records = append(records, domain.ClientRecord{
			CustomerID: id,
			Name:       name,
			Email:      email,
		})
	}

	return records, nil
}

func discoverColumns(header []string) (nameCol, emailCol, idCol int) {
	nameCol, emailCol, idCol = fallbackNameCol, fallbackEmailCol, fallbackIDCol

	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case h == "":
		case strings.Contains(h, "client name"):
			nameCol = i
		case strings.Contains(h, "client mail"):
			emailCol = i
		case strings.Contains(h, "customer id") || strings.Contains(h, "customerid"):
			idCol = i
		}
	}
	return nameCol, emailCol, idCol
}

// cellAt returns the trimmed cell value, tolerating short rows: excelize
// drops trailing empty cells from GetRows output.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
