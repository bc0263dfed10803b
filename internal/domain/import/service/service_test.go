package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/domain/categorization"
	"github.com/spendlens/spendlens/internal/domain/import/normalizer"
	"github.com/spendlens/spendlens/internal/domain/import/parser"
	"github.com/spendlens/spendlens/internal/domain/transactions"
)

type fakeStore struct {
	saved   []transactions.Transaction
	listed  []transactions.Transaction
	saveErr error
	listErr error
}

func (f *fakeStore) SaveTransactions(_ context.Context, userID uuid.UUID, txs []transactions.Transaction) ([]uuid.UUID, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, txs...)
	ids := make([]uuid.UUID, len(txs))
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids, nil
}

func (f *fakeStore) ListTransactions(_ context.Context, _ uuid.UUID) ([]transactions.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func newTestService(store *fakeStore) *ImportService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewImportService(store, categorization.NewCategorizer(), logger)
}

func TestImportService_ImportFile(t *testing.T) {
	csv := `Date,Type,Description,Check #,Amount
01/15/2024,Debit Card,WHOLE FOODS MARKET #123,,-45.67
01/20/2024,Deposits,PAYROLL ACME CORP,,"2,500.00"
not-a-date,,BROKEN,,1.00`

	store := &fakeStore{}
	svc := newTestService(store)
	userID := uuid.New()

	result, err := svc.ImportFile(context.Background(), userID, "statement.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowsTotal)
	assert.Equal(t, 2, result.RowsImported)
	assert.Len(t, result.Skipped, 1)
	assert.Len(t, result.SavedIDs, 2)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), result.EarliestDate)
	assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), result.LatestDate)

	require.Len(t, store.saved, 2)
	first := store.saved[0]
	assert.Equal(t, userID, first.UserID)
	assert.Equal(t, categorization.Groceries, first.Category)
	assert.Positive(t, first.Confidence)
	assert.False(t, first.CategoryConfirmed)
	assert.Equal(t, categorization.Salary, store.saved[1].Category)
}

func TestImportService_ImportFile_StoreErrorUnmodified(t *testing.T) {
	csv := `Date,Type,Description,Check #,Amount
01/15/2024,,COFFEE,,-3.50`

	storeErr := errors.New("deadline exceeded")
	svc := newTestService(&fakeStore{saveErr: storeErr})

	_, err := svc.ImportFile(context.Background(), uuid.New(), "x.csv", strings.NewReader(csv))
	assert.Same(t, storeErr, err)
}

func TestImportService_ImportFile_EmptyFileFails(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.ImportFile(context.Background(), uuid.New(), "empty.csv",
		strings.NewReader("Date,Type,Description,Check #,Amount\n"))
	assert.ErrorIs(t, err, parser.ErrNoValidTransactions)
}

func TestImportService_ImportFile_BulkStatement(t *testing.T) {
	faker := gofakeit.New(42)

	var sb strings.Builder
	sb.WriteString("Date,Type,Description,Check #,Amount\n")
	for i := 0; i < 200; i++ {
		date := faker.DateRange(
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC),
		)
		desc := strings.ToUpper(strings.ReplaceAll(faker.Company(), ",", ""))
		amount := -faker.Price(1, 500)
		fmt.Fprintf(&sb, "%s,Debit Card,%s,,%.2f\n", date.Format("01/02/2006"), desc, amount)
	}

	store := &fakeStore{}
	svc := newTestService(store)

	result, err := svc.ImportFile(context.Background(), uuid.New(), "bulk.csv", strings.NewReader(sb.String()))
	require.NoError(t, err)

	assert.Equal(t, 200, result.RowsImported)
	assert.Len(t, store.saved, 200)
	for _, tx := range store.saved {
		assert.True(t, tx.Category.Valid(), "category %q", tx.Category)
		assert.Negative(t, tx.AmountCents)
	}
}

func TestImportService_Preview(t *testing.T) {
	csv := `Date,Type,Description,Check #,Amount
01/15/2024,,NETFLIX.COM,,-15.99`

	store := &fakeStore{}
	svc := newTestService(store)

	candidates, err := svc.Preview("statement.csv", strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, categorization.Subscriptions, candidates[0].Category)
	assert.Empty(t, store.saved, "preview must not persist")
}

func TestImportService_SuggestSimilar(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{listed: []transactions.Transaction{
		{UserID: userID, Description: "STARBUCKS #4521 SEATTLE", Merchant: "STARBUCKS"},
		{UserID: userID, Description: "STARBUCKS #4522 SEATTLE", Merchant: "STARBUCKS"},
		{UserID: userID, Description: "HOME DEPOT #881", Merchant: "HOME"},
	}}
	svc := newTestService(store)

	similar, err := svc.SuggestSimilar(context.Background(), userID, "STARBUCKS #4523 SEATTLE", "STARBUCKS")
	require.NoError(t, err)

	require.Len(t, similar, 2)
	for _, tx := range similar {
		assert.Contains(t, tx.Description, "STARBUCKS")
	}
}

func TestImportService_SuggestSimilar_ListError(t *testing.T) {
	listErr := errors.New("connection reset")
	svc := newTestService(&fakeStore{listErr: listErr})

	_, err := svc.SuggestSimilar(context.Background(), uuid.New(), "X", "Y")
	assert.Same(t, listErr, err)
}

func TestDateRange(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		start, end := DateRange(nil)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})

	t.Run("unsorted candidates", func(t *testing.T) {
		mk := func(day int) normalizer.Candidate {
			return normalizer.Candidate{Date: time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)}
		}
		start, end := DateRange([]normalizer.Candidate{mk(15), mk(3), mk(28)})
		assert.Equal(t, 3, start.Day())
		assert.Equal(t, 28, end.Day())
	})
}
