// Package memory is an in-memory RecordWriter used in tests and when no
// sheet is configured.
package memory

import (
	"context"
	"sync"

	"messbook/internal/core"
	"messbook/internal/export"
)

type Store struct {
	mu       sync.Mutex
	deposits []core.Deposit
	expenses []core.Expense

	// FailNext makes the next append return this error; used to test the
	// worker's error path.
	FailNext error
}

var _ export.RecordWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendDeposit(_ context.Context, d core.Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNext; err != nil {
		s.FailNext = nil
		return err
	}
	s.deposits = append(s.deposits, d)
	return nil
}

func (s *Store) AppendExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNext; err != nil {
		s.FailNext = nil
		return err
	}
	s.expenses = append(s.expenses, e)
	return nil
}

// Deposits returns a copy of everything appended so far.
func (s *Store) Deposits() []core.Deposit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Deposit(nil), s.deposits...)
}

// Expenses returns a copy of everything appended so far.
func (s *Store) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...)
}
