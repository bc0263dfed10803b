package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/domain/import/normalizer"
)

// ParseExcel ingests an XLSX statement whose first sheet carries the same
// fixed column layout as the CSV form: a header row with Date, Type,
// Description, Check # and Amount (case- and order-insensitive), then data
// rows. All admission and normalization rules match the CSV path.
func (p *Parser) ParseExcel(reader io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoValidTransactions
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoValidTransactions
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	raw := make([]normalizer.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		raw = append(raw, normalizer.RawRow{
			Date:        cellAt(cells, cols.date),
			Type:        cellAt(cells, cols.typ),
			Description: cellAt(cells, cols.description),
			CheckNumber: cellAt(cells, cols.checkNumber),
			Amount:      cellAt(cells, cols.amount),
		})
	}

	return p.process(raw)
}

type columnIndices struct {
	date        int
	typ         int
	description int
	checkNumber int
	amount      int
}

func mapColumns(header []string) (columnIndices, error) {
	cols := columnIndices{date: -1, typ: -1, description: -1, checkNumber: -1, amount: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "type":
			cols.typ = i
		case "description":
			cols.description = i
		case "check #":
			cols.checkNumber = i
		case "amount":
			cols.amount = i
		}
	}

	if cols.date < 0 {
		return cols, fmt.Errorf("missing required column %q", "Date")
	}
	if cols.amount < 0 {
		return cols, fmt.Errorf("missing required column %q", "Amount")
	}
	return cols, nil
}

// cellAt tolerates short rows; GetRows trims trailing empty cells.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
