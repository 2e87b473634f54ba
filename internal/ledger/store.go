// Package ledger holds the in-memory record collections of the mess book
// and the mutation rules over them. The store owns no I/O: it is rehydrated
// from persisted state at startup and the service layer writes every
// mutation back out.
package ledger

import (
	"github.com/google/uuid"

	"messbook/internal/core"
)

// Store is the arena of ledger records. Collections keep insertion order;
// lookups by id are linear, which is fine at household volumes. The store
// itself is not goroutine-safe: the application has exactly one logical
// writer and the HTTP layer serializes access.
type Store struct {
	mode       core.Mode
	members    []core.Member
	deposits   []core.Deposit
	expenses   []core.Expense
	meals      map[core.MealKey]core.MealEntry
	categories []string

	newID func() string
}

// New creates an empty store for the given mode.
func New(mode core.Mode) *Store {
	return &Store{
		mode:  mode,
		meals: make(map[core.MealKey]core.MealEntry),
		newID: uuid.NewString,
	}
}

// Mode returns the mess mode the store was opened in.
func (s *Store) Mode() core.Mode {
	return s.mode
}

// AddMember validates the record, assigns a fresh id and stores it.
func (s *Store) AddMember(m core.Member) (core.Member, error) {
	if err := m.Validate(); err != nil {
		return core.Member{}, err
	}
	m.ID = s.newID()
	s.members = append(s.members, m)
	return m, nil
}

// DeleteMember removes the member with the given id. Unknown ids are a
// silent no-op; the return value tells the caller whether anything changed.
func (s *Store) DeleteMember(id string) bool {
	for i, m := range s.members {
		if m.ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return true
		}
	}
	return false
}

// AddDeposit validates the record, assigns a fresh id and stores it.
func (s *Store) AddDeposit(d core.Deposit) (core.Deposit, error) {
	if err := d.Validate(); err != nil {
		return core.Deposit{}, err
	}
	d.ID = s.newID()
	s.deposits = append(s.deposits, d)
	return d, nil
}

// DeleteDeposit removes the deposit with the given id, if present.
func (s *Store) DeleteDeposit(id string) bool {
	for i, d := range s.deposits {
		if d.ID == id {
			s.deposits = append(s.deposits[:i], s.deposits[i+1:]...)
			return true
		}
	}
	return false
}

// AddExpense validates the record, assigns a fresh id and stores it.
func (s *Store) AddExpense(e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = s.newID()
	s.expenses = append(s.expenses, e)
	return e, nil
}

// DeleteExpense removes the expense with the given id, if present.
func (s *Store) DeleteExpense(id string) bool {
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleMeal flips exactly one attendance flag for the given date and
// member, materializing the entry from the all-attended default on first
// touch. Every other flag of the entry is preserved. Entries are never
// deleted, even when toggled back to the default.
func (s *Store) ToggleMeal(date core.Date, memberID string, meal core.MealType) (core.MealKey, core.MealEntry, error) {
	if err := date.Validate(); err != nil {
		return core.MealKey{}, core.MealEntry{}, err
	}
	key := core.NewMealKey(date, memberID)
	entry, ok := s.meals[key]
	if !ok {
		entry = core.DefaultMealEntry()
	}
	entry, err := entry.Toggle(meal)
	if err != nil {
		return core.MealKey{}, core.MealEntry{}, err
	}
	s.meals[key] = entry
	return key, entry, nil
}

// MealEntryFor reads the attendance entry for a date and member, applying
// the all-attended default when no entry is stored.
func (s *Store) MealEntryFor(date core.Date, memberID string) core.MealEntry {
	if entry, ok := s.meals[core.NewMealKey(date, memberID)]; ok {
		return entry
	}
	return core.DefaultMealEntry()
}
