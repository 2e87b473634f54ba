// Package report provides month- and category-scoped views over the ledger
// plus the deterministic share text built from them.
package report

import (
	"sort"

	"messbook/internal/core"
	"messbook/internal/ledger"
)

// CategorySelection is a multi-select over category names. The zero value
// (no names) means "no filter": every expense passes. That is a different
// state from explicitly selecting every known category, even though the two
// show the same records today; a category added later is covered by "no
// filter" but not by a concrete select-all made before the addition.
type CategorySelection struct {
	names map[string]struct{}
}

// NewCategorySelection builds a concrete selection from the given names.
func NewCategorySelection(names []string) CategorySelection {
	if len(names) == 0 {
		return CategorySelection{}
	}
	sel := CategorySelection{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		sel.names[n] = struct{}{}
	}
	return sel
}

// SelectAll is a concrete selection of every currently known category.
func SelectAll(snap ledger.Snapshot) CategorySelection {
	return NewCategorySelection(snap.Categories)
}

// IsEmpty reports the "no filter" state.
func (s CategorySelection) IsEmpty() bool {
	return len(s.names) == 0
}

// Matches reports whether an expense label passes the selection.
func (s CategorySelection) Matches(items string) bool {
	if s.IsEmpty() {
		return true
	}
	_, ok := s.names[items]
	return ok
}

// MonthDeposits returns the deposits of one calendar month in ascending
// date order, ready for report generation.
func MonthDeposits(snap ledger.Snapshot, year, month int) []core.Deposit {
	var out []core.Deposit
	for _, d := range snap.Deposits {
		if d.Date.InMonth(year, month) {
			out = append(out, d)
		}
	}
	sortDepositsAscending(out)
	return out
}

// MonthExpenses returns the expenses of one calendar month passing the
// category selection, in ascending date order.
func MonthExpenses(snap ledger.Snapshot, year, month int, sel CategorySelection) []core.Expense {
	var out []core.Expense
	for _, e := range snap.Expenses {
		if e.Date.InMonth(year, month) && sel.Matches(e.Items) {
			out = append(out, e)
		}
	}
	sortExpensesAscending(out)
	return out
}

// RecentDeposits orders deposits most-recent-first for on-screen lists.
func RecentDeposits(snap ledger.Snapshot) []core.Deposit {
	out := append([]core.Deposit(nil), snap.Deposits...)
	sortDepositsAscending(out)
	reverseDeposits(out)
	return out
}

// RecentExpenses orders expenses most-recent-first, optionally filtered.
func RecentExpenses(snap ledger.Snapshot, sel CategorySelection) []core.Expense {
	var out []core.Expense
	for _, e := range snap.Expenses {
		if sel.Matches(e.Items) {
			out = append(out, e)
		}
	}
	sortExpensesAscending(out)
	reverseExpenses(out)
	return out
}

// Sorts are stable so same-day records keep their insertion order.

func sortDepositsAscending(ds []core.Deposit) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Date.Before(ds[j].Date)
	})
}

func sortExpensesAscending(es []core.Expense) {
	sort.SliceStable(es, func(i, j int) bool {
		return es[i].Date.Before(es[j].Date)
	})
}

func reverseDeposits(ds []core.Deposit) {
	for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
		ds[i], ds[j] = ds[j], ds[i]
	}
}

func reverseExpenses(es []core.Expense) {
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
}
