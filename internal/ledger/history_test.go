package ledger

import (
	"testing"
	"time"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
)

func expenseAt(id string, amount int64, at time.Time) ExpenseView {
	return ExpenseView{
		Expense: &models.Expense{
			ID:          id,
			Description: "Dinner",
			Amount:      money.FromCents(amount),
			PayerID:     "alice",
			CreatedAt:   at,
		},
		PayerName: "Alice Smith",
		GroupName: "Roommates",
	}
}

func settlementAt(splitID string, amount int64, at time.Time) models.Settlement {
	return models.Settlement{
		SplitID:     splitID,
		Description: "Dinner",
		Amount:      money.FromCents(amount),
		SettledAt:   at,
		DebtorID:    "bob",
		CreditorID:  "alice",
		GroupName:   "Roommates",
	}
}

func TestComposeHistory_DefaultNewestFirst(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	events := ComposeHistory("alice",
		[]ExpenseView{expenseAt("e1", 10000, t1)},
		[]models.Settlement{settlementAt("s1", 3333, t2)},
		OrderByDate, true,
	)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Settlement at T2 > T1 comes first under date-descending.
	if events[0].ID != "settle_s1" || events[1].ID != "exp_e1" {
		t.Errorf("order = [%s, %s], want [settle_s1, exp_e1]", events[0].ID, events[1].ID)
	}
}

func TestComposeHistory_EventFields(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	events := ComposeHistory("alice",
		[]ExpenseView{expenseAt("e1", 10000, t1)},
		[]models.Settlement{settlementAt("s1", 3333, t1.Add(time.Hour))},
		OrderByDate, false,
	)

	exp := events[0]
	if exp.Type != models.EventExpense {
		t.Fatalf("first event type = %s", exp.Type)
	}
	if exp.PayerName != "Alice Smith" || exp.GroupName != "Roommates" {
		t.Errorf("expense event display fields = %q / %q", exp.PayerName, exp.GroupName)
	}

	pay := events[1]
	if pay.Type != models.EventPayment {
		t.Fatalf("second event type = %s", pay.Type)
	}
	if pay.Description != "Payment for Dinner" {
		t.Errorf("payment description = %q", pay.Description)
	}
	if !pay.IsReceiving {
		t.Error("alice is the creditor, expected IsReceiving")
	}
	if pay.FromUser != "bob" || pay.ToUser != "alice" {
		t.Errorf("payment parties = %s -> %s", pay.FromUser, pay.ToUser)
	}

	// Composed for the debtor instead, the same settlement is not receiving.
	events = ComposeHistory("bob", nil,
		[]models.Settlement{settlementAt("s1", 3333, t1)},
		OrderByDate, true,
	)
	if events[0].IsReceiving {
		t.Error("bob is the debtor, expected IsReceiving=false")
	}
}

func TestComposeHistory_AmountOrdering(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	events := ComposeHistory("alice",
		[]ExpenseView{
			expenseAt("small", 500, t1),
			expenseAt("big", 20000, t1.Add(time.Minute)),
		},
		[]models.Settlement{settlementAt("mid", 7000, t1.Add(2*time.Minute))},
		OrderByAmount, true,
	)

	want := []string{"exp_big", "settle_mid", "exp_small"}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("event %d = %s, want %s", i, events[i].ID, id)
		}
	}

	// Ascending flips the order.
	events = ComposeHistory("alice",
		[]ExpenseView{
			expenseAt("small", 500, t1),
			expenseAt("big", 20000, t1.Add(time.Minute)),
		},
		[]models.Settlement{settlementAt("mid", 7000, t1.Add(2*time.Minute))},
		OrderByAmount, false,
	)
	if events[0].ID != "exp_small" || events[2].ID != "exp_big" {
		t.Errorf("ascending order = [%s %s %s]", events[0].ID, events[1].ID, events[2].ID)
	}
}

// Colliding timestamps keep expense events ahead of settlement events in
// both directions; the stable sort never reorders equal keys.
func TestComposeHistory_TimestampCollision(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, desc := range []bool{true, false} {
		events := ComposeHistory("alice",
			[]ExpenseView{expenseAt("e1", 10000, t1)},
			[]models.Settlement{settlementAt("s1", 3333, t1)},
			OrderByDate, desc,
		)
		if events[0].ID != "exp_e1" || events[1].ID != "settle_s1" {
			t.Errorf("desc=%v: collision order = [%s, %s], want expense first",
				desc, events[0].ID, events[1].ID)
		}
	}
}
