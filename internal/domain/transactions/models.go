// Package transactions is the persistence collaborator for the ingestion
// pipeline: per-user storage of transactions, debts, budgets, custom
// categories and income sources. The store assigns identifiers and
// timestamps; the pipeline never generates them.
package transactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens/internal/domain/categorization"
)

// Transaction is a persisted statement transaction. AmountCents keeps the
// source sign: debits negative, credits positive.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Date              time.Time
	Description       string
	AmountCents       int64
	Merchant          string
	Category          categorization.Category
	CategoryConfirmed bool
	Confidence        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Debt is a tracked liability.
type Debt struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	BalanceCents    int64
	InterestRate    float64 // annual percentage rate
	MinPaymentCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Budget is a monthly spending cap for one category.
type Budget struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Category          categorization.Category
	MonthlyLimitCents int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Income is a recurring income source.
type Income struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Source      string
	AmountCents int64
	Frequency   string // e.g. "monthly", "biweekly"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserCategory is a user-defined category label, stored alongside the
// built-in closed set for display purposes.
type UserCategory struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}
