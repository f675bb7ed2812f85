package service

import (
	"context"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/ledger"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage"
)

// HistoryService composes the activity feed that interleaves expense
// creation with settlements.
type HistoryService struct {
	store storage.Store
}

// NewHistoryService creates a new HistoryService with the given storage
// backend.
func NewHistoryService(store storage.Store) *HistoryService {
	return &HistoryService{store: store}
}

// History returns the user's merged feed. Ordering is "date" or "amount";
// the default (and any unrecognized value) is date, and descending defaults
// to true so the newest activity comes first.
func (h *HistoryService) History(ctx context.Context, userID string, ordering ledger.Ordering, descending bool) ([]models.Event, error) {
	user, err := h.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %s", userID)
	}

	expenses, err := h.store.ListExpensesForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load expenses", err)
	}
	settlements, err := h.store.ListSettlements(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load settlements", err)
	}

	views, err := h.annotate(ctx, expenses)
	if err != nil {
		return nil, err
	}

	if ordering != ledger.OrderByAmount {
		ordering = ledger.OrderByDate
	}
	return ledger.ComposeHistory(userID, views, settlements, ordering, descending), nil
}

// annotate resolves payer display names and group names for expense events.
func (h *HistoryService) annotate(ctx context.Context, expenses []*models.Expense) ([]ledger.ExpenseView, error) {
	payerIDs := make([]string, 0, len(expenses))
	seen := make(map[string]bool)
	for _, e := range expenses {
		if !seen[e.PayerID] {
			seen[e.PayerID] = true
			payerIDs = append(payerIDs, e.PayerID)
		}
	}
	payers, err := h.store.GetUsersByIDs(ctx, payerIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load payers", err)
	}

	groupNames := make(map[string]string)
	views := make([]ledger.ExpenseView, len(expenses))
	for i, e := range expenses {
		name, ok := groupNames[e.GroupID]
		if !ok {
			group, err := h.store.GetGroup(ctx, e.GroupID)
			if err != nil {
				return nil, apperrors.Internal("failed to load group", err)
			}
			if group != nil {
				name = group.Name
			}
			groupNames[e.GroupID] = name
		}

		var payerName string
		if payer, ok := payers[e.PayerID]; ok {
			payerName = payer.DisplayName()
		}
		views[i] = ledger.ExpenseView{
			Expense:   e,
			PayerName: payerName,
			GroupName: name,
		}
	}
	return views, nil
}
