package stats

import (
	"math"

	"messbook/internal/core"
	"messbook/internal/ledger"
)

// Status is the sign of a member's balance.
type Status string

const (
	StatusDue     Status = "due"     // owes the fund
	StatusSurplus Status = "surplus" // has overpaid
	StatusSettled Status = "settled"
)

// Balance is one member's settlement position against the fund.
type Balance struct {
	MemberID string
	Units    float64
	Deposits core.Money
	// AmountCents = Units * MealRate - Deposits, rounded to the cent.
	// Positive means the member owes the fund.
	AmountCents int64
	Status      Status
}

// MemberUnits sums the weighted attendance of one member over all stored
// entries. In single mode the member dimension is empty and this covers
// every entry.
func MemberUnits(snap ledger.Snapshot, memberID string) float64 {
	w := snap.Weights()
	var units float64
	for key, entry := range snap.Meals {
		if key.MemberID == memberID {
			units += entry.Units(w)
		}
	}
	return units
}

// MemberDeposits sums deposit amounts recorded for one member.
func MemberDeposits(snap ledger.Snapshot, memberID string) core.Money {
	var total core.Money
	for _, d := range snap.Deposits {
		if d.MemberID == memberID {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// MemberBalance computes one member's balance against a Totals value taken
// from the same snapshot. Passing totals in rather than recomputing them
// keeps every member charged the identical per-unit rate.
func MemberBalance(snap ledger.Snapshot, totals Totals, memberID string) Balance {
	units := MemberUnits(snap, memberID)
	deposits := MemberDeposits(snap, memberID)
	amount := int64(math.Round(units*totals.MealRate - float64(deposits.Cents)))

	status := StatusSettled
	switch {
	case amount > 0:
		status = StatusDue
	case amount < 0:
		status = StatusSurplus
	}
	return Balance{
		MemberID:    memberID,
		Units:       units,
		Deposits:    deposits,
		AmountCents: amount,
		Status:      status,
	}
}

// AllBalances computes every member's balance from one consistent snapshot.
func AllBalances(snap ledger.Snapshot) []Balance {
	totals := Compute(snap)
	balances := make([]Balance, 0, len(snap.Members))
	for _, m := range snap.Members {
		balances = append(balances, MemberBalance(snap, totals, m.ID))
	}
	return balances
}
