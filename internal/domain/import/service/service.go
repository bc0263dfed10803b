// Package service orchestrates statement imports: file parsing, candidate
// categorization and hand-off to the persistence store.
package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens/internal/domain/categorization"
	"github.com/spendlens/spendlens/internal/domain/import/normalizer"
	"github.com/spendlens/spendlens/internal/domain/import/parser"
	"github.com/spendlens/spendlens/internal/domain/transactions"
)

// TransactionStore is the persistence collaborator. Store failures are
// returned to the caller unmodified; retry policy belongs to the caller.
type TransactionStore interface {
	SaveTransactions(ctx context.Context, userID uuid.UUID, txs []transactions.Transaction) ([]uuid.UUID, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]transactions.Transaction, error)
}

// ImportResult summarizes one completed import.
type ImportResult struct {
	RowsTotal      int
	RowsImported   int
	RowsFiltered   int
	AmbiguousDates int
	Skipped        []parser.SkippedRow
	SavedIDs       []uuid.UUID
	EarliestDate   time.Time
	LatestDate     time.Time
}

// ImportService wires the parser, categorizer and store together. All work
// for one file runs synchronously within the calling goroutine; there is no
// cancellation point mid-parse, an import either completes or fails whole.
type ImportService struct {
	store       TransactionStore
	categorizer *categorization.Categorizer
	parser      *parser.Parser
	logger      *slog.Logger
}

// NewImportService creates an import service.
func NewImportService(store TransactionStore, categorizer *categorization.Categorizer, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		store:       store,
		categorizer: categorizer,
		parser:      parser.NewParser(logger),
		logger:      logger,
	}
}

// ImportFile ingests one statement file for a user: parse, categorize, then
// persist. The filename only selects the decoder (.xlsx vs CSV).
func (s *ImportService) ImportFile(ctx context.Context, userID uuid.UUID, filename string, reader io.Reader) (*ImportResult, error) {
	parsed, err := s.parse(filename, reader)
	if err != nil {
		filesFailed.Inc()
		return nil, err
	}

	candidates := s.categorize(parsed.Candidates)

	txs := make([]transactions.Transaction, len(candidates))
	for i, c := range candidates {
		txs[i] = transactions.Transaction{
			UserID:            userID,
			Date:              c.Date,
			Description:       c.Description,
			AmountCents:       c.AmountCents,
			Merchant:          c.Merchant,
			Category:          c.Category,
			CategoryConfirmed: c.CategoryConfirmed,
			Confidence:        c.Confidence,
		}
	}

	ids, err := s.store.SaveTransactions(ctx, userID, txs)
	if err != nil {
		return nil, err
	}

	rowsImported.Add(float64(len(candidates)))
	rowsSkipped.Add(float64(len(parsed.Skipped)))

	start, end := DateRange(candidates)
	result := &ImportResult{
		RowsTotal:      parsed.TotalRows,
		RowsImported:   len(candidates),
		RowsFiltered:   parsed.FilteredRows,
		AmbiguousDates: parsed.AmbiguousDates,
		Skipped:        parsed.Skipped,
		SavedIDs:       ids,
		EarliestDate:   start,
		LatestDate:     end,
	}

	s.logger.Info("statement imported",
		"user_id", userID,
		"file", filename,
		"rows_total", result.RowsTotal,
		"rows_imported", result.RowsImported,
		"rows_skipped", len(result.Skipped),
		"ambiguous_dates", result.AmbiguousDates,
	)
	return result, nil
}

// Preview parses and categorizes a statement without persisting anything.
func (s *ImportService) Preview(filename string, reader io.Reader) ([]normalizer.Candidate, error) {
	parsed, err := s.parse(filename, reader)
	if err != nil {
		return nil, err
	}
	return s.categorize(parsed.Candidates), nil
}

// SuggestSimilar returns the user's stored transactions whose combined text
// is near-duplicate to the given description and merchant, for batch
// recategorization suggestions.
func (s *ImportService) SuggestSimilar(ctx context.Context, userID uuid.UUID, description, merchant string) ([]transactions.Transaction, error) {
	stored, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(description + " " + merchant)

	var similar []transactions.Transaction
	for _, tx := range stored {
		compare := strings.ToLower(tx.Description + " " + tx.Merchant)
		if categorization.Similarity(target, compare) > categorization.SimilarityThreshold {
			similar = append(similar, tx)
		}
	}
	return similar, nil
}

func (s *ImportService) parse(filename string, reader io.Reader) (*parser.ParseResult, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return s.parser.ParseExcel(reader)
	}
	return s.parser.Parse(reader)
}

func (s *ImportService) categorize(candidates []normalizer.Candidate) []normalizer.Candidate {
	inputs := make([]categorization.Input, len(candidates))
	for i, c := range candidates {
		inputs[i] = categorization.Input{Description: c.Description, Merchant: c.Merchant}
	}

	results := s.categorizer.CategorizeBatch(inputs)
	for i := range candidates {
		candidates[i].Category = results[i].Category
		candidates[i].Confidence = results[i].Confidence
	}
	return candidates
}

// DateRange returns the earliest and latest candidate dates. Zero times when
// the slice is empty.
func DateRange(candidates []normalizer.Candidate) (start, end time.Time) {
	for _, c := range candidates {
		if start.IsZero() || c.Date.Before(start) {
			start = c.Date
		}
		if end.IsZero() || c.Date.After(end) {
			end = c.Date
		}
	}
	return start, end
}
