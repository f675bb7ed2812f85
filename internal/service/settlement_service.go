package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
	"github.com/divide-it/backend/internal/storage"
)

// SettlementService resolves obligations, one split at a time or in bulk
// between two users.
type SettlementService struct {
	store storage.Store
	// now is swappable for tests.
	now func() time.Time
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store, now: time.Now}
}

// SettleSplit marks a single split settled.
//
// Only the debtor may settle their own obligation; anyone else gets a
// permission error regardless of split state. Settling an already-settled
// split is an idempotent success: the split comes back unchanged and
// settled_at keeps its original value, so duplicate client retries never
// error or double-count.
func (s *SettlementService) SettleSplit(ctx context.Context, splitID, actingUserID string) (*models.ExpenseSplit, error) {
	split, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, apperrors.Internal("failed to get split", err)
	}
	if split == nil {
		return nil, apperrors.NotFound("split not found: %s", splitID)
	}
	if split.UserID != actingUserID {
		return nil, apperrors.PermissionDenied("only the debtor may settle this split")
	}
	if split.IsSettled {
		return split, nil
	}

	transitioned, err := s.store.SettleSplit(ctx, splitID, s.now())
	if err != nil {
		return nil, apperrors.Internal("failed to settle split", err)
	}
	if !transitioned {
		// A concurrent settle won the race; fall through to the stored state.
		slog.Debug("Split already settled concurrently", "split_id", splitID)
	}

	settled, err := s.store.GetSplit(ctx, splitID)
	if err != nil || settled == nil {
		return nil, apperrors.Internal("failed to reload split", err)
	}
	slog.Info("Split settled", "split_id", splitID, "user_id", actingUserID)
	return settled, nil
}

// SettleAllResult reports the debts transitioned by one bulk settle call.
type SettleAllResult struct {
	Count       int
	TotalAmount money.Amount
}

// SettleAllBetween settles every open split owed by the debtor to the
// creditor in one atomic update.
//
// This is intentionally directional: opposing debts from creditor to debtor
// stay open. Netting is a presentation concern of the balance breakdown,
// never a mutation. Calling with no matching debts succeeds with zeros.
func (s *SettlementService) SettleAllBetween(ctx context.Context, debtorID, creditorID string) (SettleAllResult, error) {
	for _, id := range []string{debtorID, creditorID} {
		user, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			return SettleAllResult{}, apperrors.Internal("failed to look up user", err)
		}
		if user == nil {
			return SettleAllResult{}, apperrors.NotFound("user not found: %s", id)
		}
	}

	count, total, err := s.store.SettleAllBetween(ctx, debtorID, creditorID, s.now())
	if err != nil {
		return SettleAllResult{}, apperrors.Internal("failed to settle debts", err)
	}

	slog.Info("Settled all between",
		"debtor_id", debtorID,
		"creditor_id", creditorID,
		"count", count,
		"total", total.String(),
	)
	return SettleAllResult{Count: count, TotalAmount: total}, nil
}
