package model

import (
	"time"

	"github.com/tavolo/tavolo/internal/money"
)

// LedgerKind discriminates income from expense entries. Both share one
// table and one shape; the API exposes them as separate resources.
type LedgerKind string

const (
	KindIncome  LedgerKind = "income"
	KindExpense LedgerKind = "expense"
)

// IsValid reports whether the kind is a known discriminator.
func (k LedgerKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// LedgerEntry is a single income or expense record. Entries are
// append-only: the API exposes create and list but no update or delete.
type LedgerEntry struct {
	ID           string       `json:"id"`
	Kind         LedgerKind   `json:"-"`
	Value        money.Amount `json:"value"`
	Note         *string      `json:"note"`
	Date         time.Time    `json:"date"`
	RestaurantID string       `json:"restaurantId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// LedgerSummary aggregates a restaurant's ledger over a period.
type LedgerSummary struct {
	Income       money.Amount `json:"income"`
	Expenses     money.Amount `json:"expenses"`
	Net          money.Amount `json:"net"`
	IncomeCount  int64        `json:"incomeCount"`
	ExpenseCount int64        `json:"expenseCount"`
}
