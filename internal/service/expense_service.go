package service

import (
	"context"
	"log/slog"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
	"github.com/divide-it/backend/internal/splitter"
	"github.com/divide-it/backend/internal/storage"
)

// ExpenseService creates and serves expenses with their splits.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput is the caller's request to record an expense.
type CreateExpenseInput struct {
	Description string
	// Amount is the raw fixed-point string from the client, e.g. "100.00".
	Amount  string
	PayerID string
	GroupID string
	// ParticipantIDs optionally restricts who shares the expense. When
	// empty, all current group members participate; a group with no members
	// falls back to the payer alone.
	ParticipantIDs []string
}

// CreateExpense validates the input, resolves the participant set,
// materializes the splits and persists everything atomically.
//
// Participant resolution order: explicit ids, group members, then the payer
// alone. Every referenced id must resolve; an unknown participant rejects
// the whole expense rather than being skipped, because a silently dropped
// participant would corrupt the split-sum invariant.
func (s *ExpenseService) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	if in.Description == "" {
		return nil, apperrors.Invalid("description is required")
	}
	amount, err := money.ParsePositive(in.Amount)
	if err != nil {
		return nil, apperrors.Invalid("invalid amount: %v", err)
	}

	payer, err := s.store.GetUserByID(ctx, in.PayerID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up payer", err)
	}
	if payer == nil {
		return nil, apperrors.Invalid("invalid payer or group")
	}
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up group", err)
	}
	if group == nil {
		return nil, apperrors.Invalid("invalid payer or group")
	}

	participantIDs := splitter.ResolveParticipants(in.ParticipantIDs, group.MemberIDs, payer.ID)
	if len(in.ParticipantIDs) > 0 {
		// Explicit ids must all resolve to existing users.
		users, err := s.store.GetUsersByIDs(ctx, participantIDs)
		if err != nil {
			return nil, apperrors.Internal("failed to look up participants", err)
		}
		for _, id := range participantIDs {
			if _, ok := users[id]; !ok {
				return nil, apperrors.Invalid("unknown participant: %s", id)
			}
		}
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      amount,
		PayerID:     payer.ID,
		GroupID:     group.ID,
	}
	splits, err := splitter.BuildSplits(expense.ID, amount, payer.ID, participantIDs)
	if err != nil {
		return nil, apperrors.Invalid("cannot split expense: %v", err)
	}
	expense.Splits = splits

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "payer_id", payer.ID, "group_id", group.ID, "error", err)
		return nil, apperrors.Internal("failed to create expense", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", amount.String(),
		"participants", len(splits),
	)
	return expense, nil
}

// GetExpense retrieves an expense with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get expense", err)
	}
	if expense == nil {
		return nil, apperrors.NotFound("expense not found: %s", id)
	}
	return expense, nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up group", err)
	}
	if group == nil {
		return nil, apperrors.NotFound("group not found: %s", groupID)
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Internal("failed to list expenses", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to get expense", err)
	}
	if expense == nil {
		return apperrors.NotFound("expense not found: %s", id)
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return apperrors.Internal("failed to delete expense", err)
	}
	slog.Info("Expense deleted", "expense_id", id)
	return nil
}

// MonthlyUsage returns per-month totals of expenses paid by the user,
// oldest month first.
func (s *ExpenseService) MonthlyUsage(ctx context.Context, userID string) ([]models.MonthlyTotal, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %s", userID)
	}
	totals, err := s.store.MonthlyTotals(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to compute monthly usage", err)
	}
	return totals, nil
}
