package models

import (
	"time"

	"github.com/divide-it/backend/internal/money"
)

// Expense is an atomic spending event paid by one user on behalf of a group.
// Immutable once created except for deletion; deleting an expense deletes
// its splits.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	Description string

	// Amount is the full amount the payer spent.
	Amount money.Amount

	// PayerID is the user who paid.
	PayerID string

	// GroupID is the group that owns this expense.
	GroupID string

	CreatedAt time.Time

	// Splits are the per-participant obligations. An expense always has at
	// least one split and their amounts sum to Amount exactly.
	Splits []ExpenseSplit
}

// ExpenseSplit is one participant's obligation for one expense.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	ExpenseID string

	// UserID is the debtor who owes AmountOwed to the expense's payer.
	UserID string

	AmountOwed money.Amount

	// IsSettled marks the obligation resolved. The payer's own split is
	// created settled; settlement is terminal.
	IsSettled bool

	// SettledAt is set exactly once, on the transition to settled.
	// Nil while unsettled, and nil for the payer's self-split (which never
	// went through a settlement).
	SettledAt *time.Time
}

// Debt is one open obligation with both parties resolved, as read back from
// the store for balance aggregation. Amount flows from DebtorID to CreditorID.
type Debt struct {
	SplitID    string
	ExpenseID  string
	DebtorID   string
	CreditorID string
	Amount     money.Amount
}

// MonthlyTotal is one month's total spend for the usage report.
type MonthlyTotal struct {
	Month time.Time
	Total money.Amount
}
