// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExpense persists an expense and all of its splits in one
// transaction. Either every record is written or none are; a partial
// expense with missing splits is never observable.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount_cents, payer_id, group_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount.Cents(),
		expense.PayerID, expense.GroupID, expense.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		var settledAt interface{}
		if split.SettledAt != nil {
			settledAt = split.SettledAt.Unix()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (id, expense_id, user_id, amount_owed_cents, is_settled, settled_at) VALUES (?, ?, ?, ?, ?, ?)",
			split.ID, split.ExpenseID, split.UserID, split.AmountOwed.Cents(),
			boolToInt(split.IsSettled), settledAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including all of its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.scanExpense(ctx, id)
	if err != nil || expense == nil {
		return expense, err
	}
	if err := s.loadSplits(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) scanExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amountCents, createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount_cents, payer_id, group_id, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &expense.Description, &amountCents,
		&expense.PayerID, &expense.GroupID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = centsAmount(amountCents)
	expense.CreatedAt = time.Unix(createdAt, 0)
	return expense, nil
}

func (s *SQLiteStore) loadSplits(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, user_id, amount_owed_cents, is_settled, settled_at FROM expense_splits WHERE expense_id = ? ORDER BY rowid",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return err
		}
		expense.Splits = append(expense.Splits, *split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT id FROM expenses WHERE group_id = ? ORDER BY created_at DESC, rowid DESC",
		groupID,
	)
}

// ListExpensesForUser retrieves every expense the user paid or participates
// in, deduplicated, in creation order.
func (s *SQLiteStore) ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id FROM expenses e
		 LEFT JOIN expense_splits es ON es.expense_id = e.id
		 WHERE e.payer_id = ? OR es.user_id = ?
		 ORDER BY e.created_at, e.rowid`,
		userID, userID,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	expenses := make([]*models.Expense, 0, len(ids))
	for _, id := range ids {
		expense, err := s.GetExpense(ctx, id)
		if err != nil {
			return nil, err
		}
		if expense != nil {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense not found: %s", id)
	}
	return nil
}

// MonthlyTotals returns per-month totals of expenses paid by the user,
// oldest month first.
func (s *SQLiteStore) MonthlyTotals(ctx context.Context, payerID string) ([]models.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at, 'unixepoch') AS month, SUM(amount_cents)
		 FROM expenses WHERE payer_id = ?
		 GROUP BY month ORDER BY month`,
		payerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []models.MonthlyTotal
	for rows.Next() {
		var month string
		var cents int64
		if err := rows.Scan(&month, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("failed to parse month %q: %w", month, err)
		}
		totals = append(totals, models.MonthlyTotal{Month: parsed, Total: centsAmount(cents)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly totals: %w", err)
	}
	return totals, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
