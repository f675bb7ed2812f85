package models

import (
	"time"

	"github.com/divide-it/backend/internal/money"
)

// EventType discriminates the two kinds of activity feed entries.
type EventType string

const (
	// EventExpense is the creation of an expense.
	EventExpense EventType = "expense"
	// EventPayment is the settlement of a split.
	EventPayment EventType = "payment"
)

// Event is one entry in a user's activity history: either an expense the
// user paid or participated in, or a settlement the user was on either
// side of.
type Event struct {
	// ID is "exp_<expenseID>" or "settle_<splitID>".
	ID   string
	Type EventType

	// Description is the expense description, or "Payment for <description>"
	// for settlement events.
	Description string

	// Amount is the expense amount, or the settled split's amount owed.
	Amount money.Amount

	// Date is the expense creation time, or the split's settlement time.
	Date time.Time

	GroupName string

	// Expense event fields.
	PayerID   string
	PayerName string
	Splits    []ExpenseSplit

	// Payment event fields.
	FromUser string
	ToUser   string
	// IsReceiving is true when the user the history was composed for is the
	// creditor of this payment.
	IsReceiving bool
}

// Settlement is a settled split joined with its expense context, the raw
// material for payment events.
type Settlement struct {
	SplitID     string
	ExpenseID   string
	Description string
	Amount      money.Amount
	SettledAt   time.Time
	DebtorID    string
	CreditorID  string
	GroupName   string
}
