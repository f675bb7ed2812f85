package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
)

func centsAmount(cents int64) money.Amount {
	return money.FromCents(cents)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSplit(row scanner) (*models.ExpenseSplit, error) {
	split := &models.ExpenseSplit{}
	var owedCents int64
	var settled int
	var settledAt sql.NullInt64
	if err := row.Scan(&split.ID, &split.ExpenseID, &split.UserID,
		&owedCents, &settled, &settledAt); err != nil {
		return nil, fmt.Errorf("failed to scan split: %w", err)
	}
	split.AmountOwed = centsAmount(owedCents)
	split.IsSettled = settled != 0
	if settledAt.Valid {
		t := time.Unix(settledAt.Int64, 0)
		split.SettledAt = &t
	}
	return split, nil
}

// GetSplit retrieves a single split by ID.
func (s *SQLiteStore) GetSplit(ctx context.Context, id string) (*models.ExpenseSplit, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, expense_id, user_id, amount_owed_cents, is_settled, settled_at FROM expense_splits WHERE id = ?",
		id,
	)
	split, err := scanSplit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return split, nil
}

// ListOpenDebts returns every unsettled obligation the user is on either
// side of, in split creation order. The payer's self-split is created
// settled, so self-debts never appear here.
func (s *SQLiteStore) ListOpenDebts(ctx context.Context, userID string) ([]models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT es.id, es.expense_id, es.user_id, e.payer_id, es.amount_owed_cents
		 FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE es.is_settled = 0 AND (es.user_id = ? OR e.payer_id = ?)
		 ORDER BY es.rowid`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query open debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		var cents int64
		if err := rows.Scan(&d.SplitID, &d.ExpenseID, &d.DebtorID, &d.CreditorID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		d.Amount = centsAmount(cents)
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// SettleSplit transitions the split to settled, stamping settledAt, only if
// it is still open. The is_settled guard in the WHERE clause makes
// concurrent settlers serialize on the row: exactly one caller sees true
// and writes the timestamp, everyone else sees false.
func (s *SQLiteStore) SettleSplit(ctx context.Context, splitID string, settledAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_splits SET is_settled = 1, settled_at = ? WHERE id = ? AND is_settled = 0",
		settledAt.Unix(), splitID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to settle split: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check settle result: %w", err)
	}
	return affected > 0, nil
}

// SettleAllBetween settles every open split owed by debtor on expenses paid
// by creditor in a single transaction. Count and total reflect exactly the
// rows transitioned by this call; a call with no matching debts returns
// zeros without error.
func (s *SQLiteStore) SettleAllBetween(ctx context.Context, debtorID, creditorID string, settledAt time.Time) (int, money.Amount, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	var totalCents sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(es.amount_owed_cents)
		 FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE es.is_settled = 0 AND es.user_id = ? AND e.payer_id = ?`,
		debtorID, creditorID,
	).Scan(&count, &totalCents)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total matching debts: %w", err)
	}
	if count == 0 {
		return 0, 0, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expense_splits SET is_settled = 1, settled_at = ?
		 WHERE is_settled = 0 AND user_id = ?
		   AND expense_id IN (SELECT id FROM expenses WHERE payer_id = ?)`,
		settledAt.Unix(), debtorID, creditorID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to settle debts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, centsAmount(totalCents.Int64), nil
}

// ListSettlements returns every settled split the user was on either side
// of, joined with its expense and group context.
func (s *SQLiteStore) ListSettlements(ctx context.Context, userID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT es.id, e.id, e.description, es.amount_owed_cents, es.settled_at,
		        es.user_id, e.payer_id, g.name
		 FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 JOIN groups g ON g.id = e.group_id
		 WHERE es.is_settled = 1 AND es.settled_at IS NOT NULL
		   AND (es.user_id = ? OR e.payer_id = ?)
		 ORDER BY es.settled_at, es.rowid`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var cents, settledAt int64
		if err := rows.Scan(&st.SplitID, &st.ExpenseID, &st.Description, &cents,
			&settledAt, &st.DebtorID, &st.CreditorID, &st.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.Amount = centsAmount(cents)
		st.SettledAt = time.Unix(settledAt, 0)
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
