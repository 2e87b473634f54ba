package storage

import (
	"context"
	"fmt"

	"messbook/internal/core"
)

// Record writes. Each helper mirrors one store mutation; the cascading
// category rename runs in a single transaction so history is rewritten
// entirely or not at all.

func (r *SQLiteRepository) InsertMember(ctx context.Context, m core.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, name, room_no, joined_date) VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, m.RoomNo, m.JoinedDate.String())
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteMember(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) InsertDeposit(ctx context.Context, d core.Deposit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deposits (id, amount_cents, date, member_id, notes) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Amount.Cents, d.Date.String(), d.MemberID, d.Notes)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteDeposit(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deposits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete deposit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, date, items, shopper_name, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount.Cents, e.Date.String(), e.Items, e.ShopperName, e.Notes)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertMealEntry(ctx context.Context, key core.MealKey, entry core.MealEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_entries (date, member_id, breakfast, lunch, dinner) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (date, member_id) DO UPDATE SET
		   breakfast = excluded.breakfast,
		   lunch     = excluded.lunch,
		   dinner    = excluded.dinner`,
		key.Date, key.MemberID, boolToInt(entry.Breakfast), boolToInt(entry.Lunch), boolToInt(entry.Dinner))
	if err != nil {
		return fmt.Errorf("upsert meal entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) InsertCategory(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (position, name)
		 SELECT (SELECT COALESCE(MAX(position), 0) + 1 FROM categories), ?
		 WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = ?)`,
		name, name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// RenameCategory renames the set entry and, when cascade is set, rewrites
// the matching expense history in the same transaction.
func (r *SQLiteRepository) RenameCategory(ctx context.Context, oldName, newName string, cascade bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rename: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE categories SET name = ? WHERE name = ?`, newName, oldName); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if cascade {
		if _, err := tx.ExecContext(ctx, `UPDATE expenses SET items = ?, sync_status = 'pending' WHERE items = ?`, newName, oldName); err != nil {
			return fmt.Errorf("rewrite expense history: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rename: %w", err)
	}
	return nil
}

// Reads used by LoadSnapshot and the export worker.

func (r *SQLiteRepository) listMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, room_no, joined_date FROM members ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Member
	for rows.Next() {
		var m core.Member
		var joined string
		if err := rows.Scan(&m.ID, &m.Name, &m.RoomNo, &joined); err != nil {
			return nil, err
		}
		if m.JoinedDate, err = core.ParseDate(joined); err != nil {
			return nil, fmt.Errorf("member %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) listDeposits(ctx context.Context) ([]core.Deposit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, date, member_id, notes FROM deposits ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) listExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, date, items, shopper_name, notes FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) listMealEntries(ctx context.Context) (map[core.MealKey]core.MealEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, member_id, breakfast, lunch, dinner FROM meal_entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[core.MealKey]core.MealEntry)
	for rows.Next() {
		var key core.MealKey
		var b, l, d int
		if err := rows.Scan(&key.Date, &key.MemberID, &b, &l, &d); err != nil {
			return nil, err
		}
		out[key] = core.MealEntry{Breakfast: b != 0, Lunch: l != 0, Dinner: d != 0}
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) listCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// GetDeposit fetches one deposit by id for the export worker.
func (r *SQLiteRepository) GetDeposit(ctx context.Context, id string) (core.Deposit, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, date, member_id, notes FROM deposits WHERE id = ?`, id)
	return scanDeposit(row)
}

// GetExpense fetches one expense by id for the export worker.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, date, items, shopper_name, notes FROM expenses WHERE id = ?`, id)
	return scanExpense(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeposit(row rowScanner) (core.Deposit, error) {
	var d core.Deposit
	var date string
	if err := row.Scan(&d.ID, &d.Amount.Cents, &date, &d.MemberID, &d.Notes); err != nil {
		return core.Deposit{}, err
	}
	var err error
	if d.Date, err = core.ParseDate(date); err != nil {
		return core.Deposit{}, fmt.Errorf("deposit %s: %w", d.ID, err)
	}
	return d, nil
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var date string
	if err := row.Scan(&e.ID, &e.Amount.Cents, &date, &e.Items, &e.ShopperName, &e.Notes); err != nil {
		return core.Expense{}, err
	}
	var err error
	if e.Date, err = core.ParseDate(date); err != nil {
		return core.Expense{}, fmt.Errorf("expense %s: %w", e.ID, err)
	}
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
