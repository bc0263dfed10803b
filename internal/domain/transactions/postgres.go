package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an update or delete touches no rows.
var ErrNotFound = errors.New("record not found")

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Repository implements the per-user store over PostgreSQL. Failures are
// propagated to the caller; the repository performs no retries.
type Repository struct {
	db DB
}

// NewRepository creates a transactions repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const transactionColumns = `id, user_id, date, description, amount_cents, merchant,
	category, category_confirmed, confidence, created_at, updated_at`

// SaveTransaction inserts one transaction, assigning its ID and timestamps.
func (r *Repository) SaveTransaction(ctx context.Context, tx *Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	query := `
		INSERT INTO transactions (id, user_id, date, description, amount_cents, merchant, category, category_confirmed, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		tx.ID, tx.UserID, tx.Date, tx.Description, tx.AmountCents,
		tx.Merchant, tx.Category, tx.CategoryConfirmed, tx.Confidence,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactions inserts a batch of transactions in one round trip and
// returns the assigned IDs.
func (r *Repository) SaveTransactions(ctx context.Context, userID uuid.UUID, txs []Transaction) ([]uuid.UUID, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO transactions (id, user_id, date, description, amount_cents, merchant, category, category_confirmed, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, len(txs))
	for i := range txs {
		ids[i] = uuid.New()
		batch.Queue(query,
			ids[i], userID, txs[i].Date, txs[i].Description, txs[i].AmountCents,
			txs[i].Merchant, txs[i].Category, txs[i].CategoryConfirmed, txs[i].Confidence,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range txs {
		if _, err := results.Exec(); err != nil {
			return nil, fmt.Errorf("failed to save transactions: %w", err)
		}
	}
	return ids, nil
}

// ListTransactions returns all of a user's transactions, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Date, &tx.Description, &tx.AmountCents,
			&tx.Merchant, &tx.Category, &tx.CategoryConfirmed, &tx.Confidence,
			&tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// UpdateTransaction updates the mutable fields of a transaction. A category
// edit from this path marks the category confirmed.
func (r *Repository) UpdateTransaction(ctx context.Context, tx *Transaction) error {
	query := `
		UPDATE transactions
		SET description = $3, amount_cents = $4, merchant = $5, category = $6,
			category_confirmed = $7, confidence = $8, date = $9, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query,
		tx.ID, tx.UserID, tx.Description, tx.AmountCents, tx.Merchant,
		tx.Category, tx.CategoryConfirmed, tx.Confidence, tx.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes one transaction.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateDebt inserts a debt.
func (r *Repository) CreateDebt(ctx context.Context, debt *Debt) error {
	if debt.ID == uuid.Nil {
		debt.ID = uuid.New()
	}
	query := `
		INSERT INTO debts (id, user_id, name, balance_cents, interest_rate, min_payment_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		debt.ID, debt.UserID, debt.Name, debt.BalanceCents, debt.InterestRate, debt.MinPaymentCents,
	).Scan(&debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

// ListDebts returns all of a user's debts.
func (r *Repository) ListDebts(ctx context.Context, userID uuid.UUID) ([]Debt, error) {
	query := `
		SELECT id, user_id, name, balance_cents, interest_rate, min_payment_cents, created_at, updated_at
		FROM debts
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []Debt
	for rows.Next() {
		var d Debt
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.BalanceCents, &d.InterestRate,
			&d.MinPaymentCents, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// UpdateDebt updates a debt's balance and terms.
func (r *Repository) UpdateDebt(ctx context.Context, debt *Debt) error {
	query := `
		UPDATE debts
		SET name = $3, balance_cents = $4, interest_rate = $5, min_payment_cents = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query,
		debt.ID, debt.UserID, debt.Name, debt.BalanceCents, debt.InterestRate, debt.MinPaymentCents,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDebt removes a debt.
func (r *Repository) DeleteDebt(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBudget inserts a category budget.
func (r *Repository) CreateBudget(ctx context.Context, budget *Budget) error {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	query := `
		INSERT INTO budgets (id, user_id, category, monthly_limit_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		budget.ID, budget.UserID, budget.Category, budget.MonthlyLimitCents,
	).Scan(&budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListBudgets returns all of a user's budgets.
func (r *Repository) ListBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	query := `
		SELECT id, user_id, category, monthly_limit_cents, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY category`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Category, &b.MonthlyLimitCents, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// DeleteBudget removes a budget.
func (r *Repository) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateIncome inserts an income source.
func (r *Repository) CreateIncome(ctx context.Context, income *Income) error {
	if income.ID == uuid.Nil {
		income.ID = uuid.New()
	}
	query := `
		INSERT INTO income_sources (id, user_id, source, amount_cents, frequency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		income.ID, income.UserID, income.Source, income.AmountCents, income.Frequency,
	).Scan(&income.CreatedAt, &income.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income source: %w", err)
	}
	return nil
}

// ListIncome returns all of a user's income sources.
func (r *Repository) ListIncome(ctx context.Context, userID uuid.UUID) ([]Income, error) {
	query := `
		SELECT id, user_id, source, amount_cents, frequency, created_at, updated_at
		FROM income_sources
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income sources: %w", err)
	}
	defer rows.Close()

	var sources []Income
	for rows.Next() {
		var in Income
		if err := rows.Scan(
			&in.ID, &in.UserID, &in.Source, &in.AmountCents, &in.Frequency,
			&in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income source: %w", err)
		}
		sources = append(sources, in)
	}
	return sources, rows.Err()
}

// DeleteIncome removes an income source.
func (r *Repository) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM income_sources WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCategory inserts a user-defined category label.
func (r *Repository) CreateCategory(ctx context.Context, category *UserCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	query := `
		INSERT INTO user_categories (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query, category.ID, category.UserID, category.Name).
		Scan(&category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories returns a user's custom categories.
func (r *Repository) ListCategories(ctx context.Context, userID uuid.UUID) ([]UserCategory, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM user_categories
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []UserCategory
	for rows.Next() {
		var c UserCategory
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a custom category.
func (r *Repository) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
