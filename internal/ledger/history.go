package ledger

import (
	"sort"

	"github.com/divide-it/backend/internal/models"
)

// Ordering selects the sort key for a history feed.
type Ordering string

const (
	OrderByDate   Ordering = "date"
	OrderByAmount Ordering = "amount"
)

// ExpenseView is an expense annotated with the display fields a history
// event carries; the service resolves names before composing.
type ExpenseView struct {
	Expense   *models.Expense
	PayerName string
	GroupName string
}

// ComposeHistory merges expense-creation events with settlement events into
// one feed for userID.
//
// Expense events come first in the pre-sort concatenation, so when sort keys
// collide the stable sort deterministically keeps expense events ahead of
// settlement events. Default ordering is by date, newest first.
func ComposeHistory(userID string, expenses []ExpenseView, settlements []models.Settlement, ordering Ordering, descending bool) []models.Event {
	events := make([]models.Event, 0, len(expenses)+len(settlements))

	for _, ev := range expenses {
		exp := ev.Expense
		events = append(events, models.Event{
			ID:          "exp_" + exp.ID,
			Type:        models.EventExpense,
			Description: exp.Description,
			Amount:      exp.Amount,
			Date:        exp.CreatedAt,
			GroupName:   ev.GroupName,
			PayerID:     exp.PayerID,
			PayerName:   ev.PayerName,
			Splits:      exp.Splits,
		})
	}

	for _, s := range settlements {
		events = append(events, models.Event{
			ID:          "settle_" + s.SplitID,
			Type:        models.EventPayment,
			Description: "Payment for " + s.Description,
			Amount:      s.Amount,
			Date:        s.SettledAt,
			GroupName:   s.GroupName,
			FromUser:    s.DebtorID,
			ToUser:      s.CreditorID,
			IsReceiving: s.CreditorID == userID,
		})
	}

	less := func(i, j int) bool {
		var before bool
		switch ordering {
		case OrderByAmount:
			before = events[i].Amount < events[j].Amount
		default:
			before = events[i].Date.Before(events[j].Date)
		}
		if descending {
			return !before && !equalKey(events[i], events[j], ordering)
		}
		return before
	}
	sort.SliceStable(events, less)
	return events
}

func equalKey(a, b models.Event, ordering Ordering) bool {
	if ordering == OrderByAmount {
		return a.Amount == b.Amount
	}
	return a.Date.Equal(b.Date)
}
