// Package ledger reduces raw debt and settlement records into the net
// balances and activity feeds the API serves. Everything here is a pure
// in-memory computation; nothing is retained across calls.
package ledger

import (
	"sort"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/money"
)

// Balance is a user's total position across all counterparties.
type Balance struct {
	YouOwe    money.Amount
	OwedToYou money.Amount
}

// CounterpartyBalance is the position against one other user.
// NetBalance = OwedToYou - YouOwe for that pair.
type CounterpartyBalance struct {
	CounterpartyID string
	YouOwe         money.Amount
	OwedToYou      money.Amount
	NetBalance     money.Amount
}

// ComputeBalance totals the open debts from the user's perspective.
// Debts where the user is the debtor count toward YouOwe; debts on expenses
// the user paid count toward OwedToYou. The store never emits self-debts
// (the payer's self-split is born settled), so no exclusion is needed here.
func ComputeBalance(userID string, debts []models.Debt) Balance {
	var b Balance
	for _, d := range debts {
		switch userID {
		case d.DebtorID:
			b.YouOwe += d.Amount
		case d.CreditorID:
			b.OwedToYou += d.Amount
		}
	}
	return b
}

// ComputeBreakdown groups the user's open debts by counterparty.
//
// Entries are ordered by descending absolute net balance; ties keep
// encounter order, i.e. the order counterparties first appear in debts.
// A counterparty with debt in only one direction still appears with the
// other field at zero.
func ComputeBreakdown(userID string, debts []models.Debt) []CounterpartyBalance {
	acc := make(map[string]*CounterpartyBalance)
	var order []string

	entry := func(counterparty string) *CounterpartyBalance {
		if e, ok := acc[counterparty]; ok {
			return e
		}
		e := &CounterpartyBalance{CounterpartyID: counterparty}
		acc[counterparty] = e
		order = append(order, counterparty)
		return e
	}

	for _, d := range debts {
		switch userID {
		case d.DebtorID:
			entry(d.CreditorID).YouOwe += d.Amount
		case d.CreditorID:
			entry(d.DebtorID).OwedToYou += d.Amount
		}
	}

	out := make([]CounterpartyBalance, 0, len(order))
	for _, id := range order {
		e := acc[id]
		e.NetBalance = e.OwedToYou - e.YouOwe
		out = append(out, *e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetBalance.Abs() > out[j].NetBalance.Abs()
	})
	return out
}
