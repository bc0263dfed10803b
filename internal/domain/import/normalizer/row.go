package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spendlens/spendlens/internal/domain/categorization"
	"github.com/spendlens/spendlens/pkg/money"
)

// Transaction-type values used by the statement's Type column.
const (
	typeDeposits         = "Deposits"
	typeChecks           = "Checks"
	typeDebitCard        = "Debit Card"
	typeAccountTransfers = "Account Transfers"
)

const maxMerchantLen = 50

// RawRow is one statement row as read from the file, all fields still text.
type RawRow struct {
	Date        string
	Type        string
	Description string
	CheckNumber string
	Amount      string
}

// Candidate is a normalized, not-yet-persisted transaction. Category and
// Confidence start at their defaults and are filled in by the categorizer.
type Candidate struct {
	Date              time.Time
	Description       string
	AmountCents       int64
	Merchant          string
	Category          categorization.Category
	CategoryConfirmed bool
	Confidence        int

	// DateAmbiguous marks rows whose slash date could be read either as
	// MM/DD or DD/MM; the US order was assumed.
	DateAmbiguous bool
}

// FieldError reports which statement field made a row unusable.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }

// NormalizeRow converts a raw row into a candidate, or fails with a
// FieldError naming the invalid field. Rows that fail are dropped by the
// pipeline, never emitted partially.
func NormalizeRow(row RawRow) (*Candidate, error) {
	dateStr := strings.TrimSpace(row.Date)
	if dateStr == "" {
		return nil, &FieldError{Field: "date", Reason: "missing date"}
	}
	date, ambiguous, ok := ParseDate(dateStr)
	if !ok {
		return nil, &FieldError{Field: "date", Reason: fmt.Sprintf("invalid date format: %s", dateStr)}
	}

	description := buildDescription(
		strings.TrimSpace(row.Type),
		strings.TrimSpace(row.Description),
		strings.TrimSpace(row.CheckNumber),
	)

	amountCents, err := money.ParseAmount(strings.TrimSpace(row.Amount))
	if err != nil {
		return nil, &FieldError{Field: "amount", Reason: fmt.Sprintf("invalid amount: %s", row.Amount)}
	}

	return &Candidate{
		Date:          date,
		Description:   description,
		AmountCents:   amountCents,
		Merchant:      ExtractMerchant(description),
		Category:      categorization.Other,
		DateAmbiguous: ambiguous,
	}, nil
}

// buildDescription assembles a human-readable description, keeping the
// bank's transaction-type metadata without cluttering the common cases.
// Deposits, debit-card and inter-account-transfer rows stay bare; checks get
// a "Check #<n>: " prefix; anything else gets "<Type>: ". A description that
// already carries the prefix is left alone so re-ingesting normalized output
// never double-prefixes.
func buildDescription(typ, description, checkNum string) string {
	if description == "" {
		description = "Unknown"
	}
	if typ == "" || typ == typeDeposits {
		return description
	}

	if typ == typeChecks && checkNum != "" {
		if strings.HasPrefix(description, "Check #") {
			return description
		}
		return fmt.Sprintf("Check #%s: %s", checkNum, description)
	}

	if typ != typeDebitCard && typ != typeAccountTransfers {
		if strings.HasPrefix(description, typ+": ") {
			return description
		}
		return typ + ": " + description
	}

	return description
}

var merchantPrefixPattern = regexp.MustCompile(`(?i)^(DEBIT|CREDIT|TRANSACTION|CHECK|ACH|TRANSFER|WITHDRAWAL|DEPOSIT)[\s-]*`)

// ExtractMerchant derives a short merchant token from a description:
// strip a leading transaction-type word, take the first whitespace- or
// hyphen-separated token longer than two characters (skipping likely
// non-merchant words like "OF" or "TO"), and cap at 50 characters.
// Best effort; the token may be imprecise.
func ExtractMerchant(description string) string {
	merchant := strings.TrimSpace(merchantPrefixPattern.ReplaceAllString(description, ""))

	for _, part := range strings.FieldsFunc(merchant, splitSpaceOrHyphen) {
		if len(part) > 2 {
			merchant = part
			break
		}
	}

	if len(merchant) > maxMerchantLen {
		merchant = merchant[:maxMerchantLen]
	}
	return merchant
}

func splitSpaceOrHyphen(r rune) bool {
	return r == ' ' || r == '\t' || r == '-'
}
