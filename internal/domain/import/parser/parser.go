// Package parser drives statement-file ingestion: CSV (and XLSX) decoding,
// row admission filtering, normalization and error aggregation. It emits
// either a non-empty candidate list or a whole-file failure; invalid rows are
// dropped from the output and reported on a secondary skipped-rows channel.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/spendlens/spendlens/internal/domain/import/normalizer"
)

// ErrNoValidTransactions is the whole-file failure returned when filtering
// and normalization leave zero rows. Upload flows surface it verbatim.
var ErrNoValidTransactions = errors.New("No valid transactions found in file")

// headerDateLabel guards against duplicated header rows embedded mid-file.
const headerDateLabel = "Date"

// statementRow mirrors the fixed statement column layout. Header matching is
// case-insensitive and order-insensitive; alternate column names are not
// inferred.
type statementRow struct {
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Description string `csv:"description"`
	CheckNumber string `csv:"check #"`
	Amount      string `csv:"amount"`
}

// SkippedRow records one dropped row and why. Callers that only care about
// the accepted list can ignore these.
type SkippedRow struct {
	Row    int    // 1-indexed file line, header included
	Field  string // offending field, when the failure is field-specific
	Reason string
	Raw    normalizer.RawRow
}

// ParseResult is the outcome of ingesting one file.
type ParseResult struct {
	Candidates     []normalizer.Candidate
	Skipped        []SkippedRow
	TotalRows      int // data rows seen, before filtering
	FilteredRows   int // rows excluded by the admission filter
	AmbiguousDates int // accepted rows whose slash date defaulted to US order
}

// Parser ingests statement files into transaction candidates.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. The logger is used to flag ambiguous dates.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse ingests a CSV statement with a header row. CSV syntax errors from
// the decoding layer propagate; zero valid rows is ErrNoValidTransactions.
func (p *Parser) Parse(reader io.Reader) (*ParseResult, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})
	gocsv.SetHeaderNormalizer(strings.ToLower)

	var rows []statementRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	raw := make([]normalizer.RawRow, len(rows))
	for i, row := range rows {
		raw[i] = normalizer.RawRow{
			Date:        row.Date,
			Type:        row.Type,
			Description: row.Description,
			CheckNumber: row.CheckNumber,
			Amount:      row.Amount,
		}
	}

	return p.process(raw)
}

// process applies the admission filter and normalizes the surviving rows.
// Shared by the CSV and XLSX front ends.
func (p *Parser) process(raw []normalizer.RawRow) (*ParseResult, error) {
	result := &ParseResult{TotalRows: len(raw)}

	for i, row := range raw {
		rowNum := i + 2 // 1-indexed plus header

		if !admit(row) {
			result.FilteredRows++
			continue
		}

		candidate, err := normalizer.NormalizeRow(row)
		if err != nil {
			skipped := SkippedRow{Row: rowNum, Reason: err.Error(), Raw: row}
			var fieldErr *normalizer.FieldError
			if errors.As(err, &fieldErr) {
				skipped.Field = fieldErr.Field
			}
			result.Skipped = append(result.Skipped, skipped)
			continue
		}

		if candidate.DateAmbiguous {
			result.AmbiguousDates++
			p.logger.Warn("ambiguous slash date, assuming MM/DD/YYYY",
				"row", rowNum, "date", row.Date)
		}

		result.Candidates = append(result.Candidates, *candidate)
	}

	if len(result.Candidates) == 0 {
		return nil, ErrNoValidTransactions
	}
	return result, nil
}

// admit is the row admission filter: a non-empty Date field that is not a
// repeated header label. A populated Date also satisfies the requirement
// that the row have at least one populated field.
func admit(row normalizer.RawRow) bool {
	date := strings.TrimSpace(row.Date)
	return date != "" && date != headerDateLabel
}
