package transactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/domain/categorization"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestRepository_SaveTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	tx := &Transaction{
		UserID:      userID,
		Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description: "WHOLE FOODS MARKET #123",
		AmountCents: -4567,
		Merchant:    "WHOLE",
		Category:    categorization.Groceries,
		Confidence:  100,
	}

	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), userID, tx.Date, tx.Description, tx.AmountCents,
			tx.Merchant, tx.Category, false, 100).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.SaveTransaction(context.Background(), tx))
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, now, tx.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveTransactions(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	txs := []Transaction{
		{Date: time.Now(), Description: "A", AmountCents: -100, Category: categorization.Other},
		{Date: time.Now(), Description: "B", AmountCents: 200, Category: categorization.Salary},
	}

	batch := mock.ExpectBatch()
	for range txs {
		batch.ExpectExec(`INSERT INTO transactions`).
			WithArgs(pgxmock.AnyArg(), userID, pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	ids, err := repo.SaveTransactions(context.Background(), userID, txs)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveTransactions_Empty(t *testing.T) {
	repo, _ := newMockRepo(t)
	ids, err := repo.SaveTransactions(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestRepository_ListTransactions(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "date", "description", "amount_cents", "merchant",
		"category", "category_confirmed", "confidence", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), userID, now, "STARBUCKS #4521", int64(-550), "STARBUCKS",
			categorization.Restaurants, false, 67, now, now).
		AddRow(uuid.New(), userID, now, "PAYROLL", int64(250000), "PAYROLL",
			categorization.Salary, true, 33, now, now)

	mock.ExpectQuery(`SELECT .+ FROM transactions`).WithArgs(userID).WillReturnRows(rows)

	txs, err := repo.ListTransactions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, categorization.Restaurants, txs[0].Category)
	assert.Equal(t, int64(250000), txs[1].AmountCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateTransaction_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE transactions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateTransaction(context.Background(), &Transaction{
		ID: uuid.New(), UserID: uuid.New(), Category: categorization.Shopping,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_DeleteTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM transactions`).
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteTransaction(context.Background(), userID, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveTransaction_ErrorPropagates(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection refused")

	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg()).
		WillReturnError(dbErr)

	err := repo.SaveTransaction(context.Background(), &Transaction{UserID: uuid.New()})
	assert.ErrorIs(t, err, dbErr)
}

func TestRepository_Debts(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	t.Run("create", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO debts`).
			WithArgs(pgxmock.AnyArg(), userID, "Car loan", int64(1_200_000), 6.5, int64(35000)).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		debt := &Debt{
			UserID: userID, Name: "Car loan",
			BalanceCents: 1_200_000, InterestRate: 6.5, MinPaymentCents: 35000,
		}
		require.NoError(t, repo.CreateDebt(context.Background(), debt))
		assert.NotEqual(t, uuid.Nil, debt.ID)
	})

	t.Run("delete missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM debts`).
			WithArgs(pgxmock.AnyArg(), userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeleteDebt(context.Background(), userID, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
