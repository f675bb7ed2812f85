// Package splitter converts an expense and an ordered participant set into
// per-participant obligations.
package splitter

import (
	"errors"

	"github.com/google/uuid"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
)

var ErrNoParticipants = errors.New("must have at least one participant")

// BuildSplits divides amount equally among participantIDs and returns one
// split per participant, in the same order.
//
// Division is integer-cent with the remainder granted one cent at a time to
// the earliest participants, so the splits always sum back to amount exactly.
// The payer's own split, if the payer participates, is created already
// settled: a person cannot owe themselves. SettledAt stays nil for it since
// no settlement ever happened.
func BuildSplits(expenseID string, amount money.Amount, payerID string, participantIDs []string) ([]models.ExpenseSplit, error) {
	if len(participantIDs) == 0 {
		return nil, ErrNoParticipants
	}

	shares, err := amount.SplitEqually(len(participantIDs))
	if err != nil {
		return nil, err
	}

	splits := make([]models.ExpenseSplit, len(participantIDs))
	for i, userID := range participantIDs {
		splits[i] = models.ExpenseSplit{
			ID:         uuid.New().String(),
			ExpenseID:  expenseID,
			UserID:     userID,
			AmountOwed: shares[i],
			IsSettled:  userID == payerID,
		}
	}
	return splits, nil
}

// ResolveParticipants picks the participant set for an expense, in order of
// precedence: the explicit ids if any were given, else the group's current
// members, else the payer alone. The returned order is stable (request order
// for explicit ids, membership order for the group) because it decides which
// participants absorb remainder cents.
func ResolveParticipants(explicitIDs []string, groupMemberIDs []string, payerID string) []string {
	if len(explicitIDs) > 0 {
		return dedup(explicitIDs)
	}
	if len(groupMemberIDs) > 0 {
		return dedup(groupMemberIDs)
	}
	return []string{payerID}
}

func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
