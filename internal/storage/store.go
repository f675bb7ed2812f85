// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookup methods return (nil, nil) when the entity does not exist; mapping
// that to a caller-facing not-found error is the service layer's job.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUser updates the user's name, email and avatar fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// GetUsersByIDs retrieves multiple users keyed by ID. Users that do not
	// exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group and its initial members.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its member IDs.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group, its expenses and their splits.
	DeleteGroup(ctx context.Context, id string) error

	// AddGroupMembers adds users to a group, ignoring existing memberships.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// CreateExpense persists an expense and all of its splits in one
	// transaction: either every record is written or none are.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses, newest first,
	// with splits.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesForUser retrieves every expense the user paid or appears
	// in a split of, deduplicated, with splits.
	ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, id string) error

	// MonthlyTotals returns per-month totals of expenses paid by the user,
	// oldest month first.
	MonthlyTotals(ctx context.Context, payerID string) ([]models.MonthlyTotal, error)

	// GetSplit retrieves a single split.
	GetSplit(ctx context.Context, id string) (*models.ExpenseSplit, error)

	// ListOpenDebts returns every unsettled obligation the user is on either
	// side of, in creation order. Self-debts never appear: the payer's own
	// split is created settled.
	ListOpenDebts(ctx context.Context, userID string) ([]models.Debt, error)

	// SettleSplit marks the split settled and stamps settledAt, but only if
	// it is still unsettled. Returns true when this call performed the
	// transition, false when the split was already settled.
	SettleSplit(ctx context.Context, splitID string, settledAt time.Time) (bool, error)

	// SettleAllBetween settles every open split owed by debtor on expenses
	// paid by creditor, atomically. Returns the count and total of exactly
	// the rows transitioned by this call.
	SettleAllBetween(ctx context.Context, debtorID, creditorID string, settledAt time.Time) (int, money.Amount, error)

	// ListSettlements returns every settled split the user was on either
	// side of, joined with its expense and group context.
	ListSettlements(ctx context.Context, userID string) ([]models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
