package ledger

import "messbook/internal/core"

// Snapshot is a deep copy of the store's collections. All derived
// computations (totals, balances, reports) read from a single snapshot so
// that every member is charged the same meal rate for one state of the
// ledger.
type Snapshot struct {
	Mode       core.Mode
	Members    []core.Member
	Deposits   []core.Deposit
	Expenses   []core.Expense
	Meals      map[core.MealKey]core.MealEntry
	Categories []string
}

// Snapshot copies the current collections.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:       s.mode,
		Members:    append([]core.Member(nil), s.members...),
		Deposits:   append([]core.Deposit(nil), s.deposits...),
		Expenses:   append([]core.Expense(nil), s.expenses...),
		Categories: append([]string(nil), s.categories...),
		Meals:      make(map[core.MealKey]core.MealEntry, len(s.meals)),
	}
	for k, v := range s.meals {
		snap.Meals[k] = v
	}
	return snap
}

// Restore replaces the store's collections with the snapshot's contents.
// Used to rehydrate from persisted state at startup.
func (s *Store) Restore(snap Snapshot) {
	s.members = append([]core.Member(nil), snap.Members...)
	s.deposits = append([]core.Deposit(nil), snap.Deposits...)
	s.expenses = append([]core.Expense(nil), snap.Expenses...)
	s.categories = append([]string(nil), snap.Categories...)
	s.meals = make(map[core.MealKey]core.MealEntry, len(snap.Meals))
	for k, v := range snap.Meals {
		s.meals[k] = v
	}
}

// Weights returns the unit-weight table for the snapshot's mode.
func (s Snapshot) Weights() core.MealWeights {
	return core.WeightsForMode(s.Mode)
}

// MealEntryFor reads an attendance entry from the snapshot with the
// all-attended default applied, mirroring Store.MealEntryFor.
func (s Snapshot) MealEntryFor(date core.Date, memberID string) core.MealEntry {
	if entry, ok := s.Meals[core.NewMealKey(date, memberID)]; ok {
		return entry
	}
	return core.DefaultMealEntry()
}
