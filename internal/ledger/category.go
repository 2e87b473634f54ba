package ledger

import "messbook/internal/core"

// Category management. Categories are a free-form, case-sensitive name set
// kept in insertion order; expenses reference them by value, so deleting a
// category leaves historical expenses with an orphaned label.

// AddCategory inserts the name unless an exact match already exists.
// Duplicates are a silent no-op; the return value reports whether the set
// changed.
func (s *Store) AddCategory(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return false
		}
	}
	s.categories = append(s.categories, name)
	return true
}

// DeleteCategory removes the name from the set. Expense records that carry
// the name are untouched. Unknown names are a silent no-op.
func (s *Store) DeleteCategory(name string) bool {
	for i, c := range s.categories {
		if c == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return true
		}
	}
	return false
}

// RenameCategory replaces oldName with newName in place, preserving its
// position. When cascade is true every expense whose Items field equals
// oldName exactly is rewritten to newName in one pass; either all matching
// expenses are rewritten or, if oldName is not in the set, none are.
// The rewritten expenses are returned so the caller can persist them.
// Renaming onto a name already in the set is a no-op so the set stays
// duplicate free.
func (s *Store) RenameCategory(oldName, newName string, cascade bool) ([]core.Expense, bool) {
	pos := -1
	for i, c := range s.categories {
		if c == newName {
			return nil, false
		}
		if c == oldName && pos < 0 {
			pos = i
		}
	}
	if pos < 0 {
		return nil, false
	}
	s.categories[pos] = newName

	if !cascade {
		return nil, true
	}
	var rewritten []core.Expense
	for i := range s.expenses {
		if s.expenses[i].Items == oldName {
			s.expenses[i].Items = newName
			rewritten = append(rewritten, s.expenses[i])
		}
	}
	return rewritten, true
}
