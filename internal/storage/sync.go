package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Sync bookkeeping for the sheet export pipeline. Deposits and expenses
// start as 'pending' and move to 'synced' or 'error' once the worker has
// dealt with them.

// RecordKind distinguishes the two exportable record types in sync messages
// and pending scans.
type RecordKind string

const (
	KindDeposit RecordKind = "deposit"
	KindExpense RecordKind = "expense"
)

// PendingRecord identifies one record awaiting export.
type PendingRecord struct {
	Kind RecordKind
	ID   string
}

// PendingRecords lists up to limit unsynced deposits and expenses, oldest
// first. Used by the worker's catch-up scan when AMQP messages were lost.
func (r *SQLiteRepository) PendingRecords(ctx context.Context, limit int) ([]PendingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, id FROM (
		    SELECT 'deposit' AS kind, id, created_at FROM deposits WHERE sync_status = 'pending'
		    UNION ALL
		    SELECT 'expense' AS kind, id, created_at FROM expenses WHERE sync_status = 'pending'
		 ) ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}
	defer rows.Close()

	var out []PendingRecord
	for rows.Next() {
		var p PendingRecord
		if err := rows.Scan(&p.Kind, &p.ID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced records a successful export.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, kind RecordKind, id string) error {
	if err := r.setSyncStatus(ctx, kind, id, "synced"); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Record marked as synced", "kind", kind, "id", id)
	return nil
}

// MarkSyncError records a failed export so the catch-up scan skips it until
// an operator intervenes.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, kind RecordKind, id string) error {
	if err := r.setSyncStatus(ctx, kind, id, "error"); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Record marked with sync error", "kind", kind, "id", id)
	return nil
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, kind RecordKind, id, status string) error {
	table := "deposits"
	if kind == KindExpense {
		table = "expenses"
	}
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE id = ?`, table), status, id)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	return nil
}
