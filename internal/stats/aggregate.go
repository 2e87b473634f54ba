// Package stats derives aggregate figures and settlement balances from a
// ledger snapshot. Everything here is a pure function recomputed in full on
// every query; nothing is memoized, so there is no cache to invalidate.
package stats

import (
	"messbook/internal/core"
	"messbook/internal/ledger"
)

// Totals are the global figures of the whole ledger history.
type Totals struct {
	TotalDeposits  core.Money
	TotalExpenses  core.Money
	CashInHand     core.Money
	TotalMealUnits float64
	// MealRate is cents per meal unit. Zero when no units are recorded:
	// a defined floor, not an error.
	MealRate float64
}

// Compute walks the full record set. Attendance sums range over stored
// entries; entries materialize from the all-attended default on first
// toggle, so a stored entry that was never toggled off still counts full.
func Compute(snap ledger.Snapshot) Totals {
	w := snap.Weights()

	var t Totals
	for _, d := range snap.Deposits {
		t.TotalDeposits = t.TotalDeposits.Add(d.Amount)
	}
	for _, e := range snap.Expenses {
		t.TotalExpenses = t.TotalExpenses.Add(e.Amount)
	}
	t.CashInHand = t.TotalDeposits.Sub(t.TotalExpenses)

	for _, entry := range snap.Meals {
		t.TotalMealUnits += entry.Units(w)
	}
	if t.TotalMealUnits > 0 {
		t.MealRate = float64(t.TotalExpenses.Cents) / t.TotalMealUnits
	}
	return t
}

// UnitsOn is the weighted contribution of a single day for a member, with
// the all-attended default applied when no entry is stored. A date with no
// entry is indistinguishable from one holding an explicit default entry.
func UnitsOn(snap ledger.Snapshot, date core.Date, memberID string) float64 {
	return snap.MealEntryFor(date, memberID).Units(snap.Weights())
}
