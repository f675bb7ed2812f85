package service

import (
	"context"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/ledger"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage"
)

// BalanceService aggregates open debts into totals and per-counterparty
// breakdowns.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// BreakdownEntry is one counterparty's position annotated with their user
// record for display.
type BreakdownEntry struct {
	Counterparty *models.User
	ledger.CounterpartyBalance
}

// Balance returns the user's total you-owe / owed-to-you position across
// all open debts. An unknown user is a not-found error, not a zero balance.
func (s *BalanceService) Balance(ctx context.Context, userID string) (ledger.Balance, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return ledger.Balance{}, err
	}
	debts, err := s.store.ListOpenDebts(ctx, userID)
	if err != nil {
		return ledger.Balance{}, apperrors.Internal("failed to load open debts", err)
	}
	return ledger.ComputeBalance(userID, debts), nil
}

// Breakdown returns the user's position against each counterparty, ordered
// by descending absolute net balance with ties in encounter order.
func (s *BalanceService) Breakdown(ctx context.Context, userID string) ([]BreakdownEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	debts, err := s.store.ListOpenDebts(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load open debts", err)
	}

	balances := ledger.ComputeBreakdown(userID, debts)

	ids := make([]string, len(balances))
	for i, b := range balances {
		ids[i] = b.CounterpartyID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("failed to load counterparties", err)
	}

	entries := make([]BreakdownEntry, len(balances))
	for i, b := range balances {
		entries[i] = BreakdownEntry{
			Counterparty:        users[b.CounterpartyID],
			CounterpartyBalance: b,
		}
	}
	return entries, nil
}

func (s *BalanceService) requireUser(ctx context.Context, userID string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return apperrors.NotFound("user not found: %s", userID)
	}
	return nil
}
