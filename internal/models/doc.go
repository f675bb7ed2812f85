// Package models defines the core domain models for the divide-it ledger.
//
// # Ownership
//
//   - Expense exclusively owns its ExpenseSplits: splits are created in one
//     batch when the expense is created, are never added to or removed from
//     afterwards, and are deleted with their expense.
//   - Group exclusively owns its Expenses.
//   - User is referenced by Expenses (as payer) and ExpenseSplits (as debtor)
//     but is never owned by them.
//
// # Lifecycle
//
// The only permitted mutation of an ExpenseSplit is the unsettled -> settled
// transition, which stamps SettledAt exactly once. Once settled, the split's
// amount and expense never change.
//
// All monetary fields are fixed-point cents (money.Amount), never floats.
package models
