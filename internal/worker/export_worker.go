// Package worker pushes persisted deposits and expenses to the backup
// sheet. It is driven two ways: AMQP sync messages for the fast path and a
// periodic scan of pending records for anything the messages missed.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"messbook/internal/amqp"
	"messbook/internal/export"
	"messbook/internal/storage"
)

type ExportWorker struct {
	storage   *storage.SQLiteRepository
	writer    export.RecordWriter
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, writer export.RecordWriter, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage exports the one record a sync message names. Errors
// propagate to the AMQP consumer, which requeues the delivery; failed sheet
// appends are additionally flagged in SQLite so an operator can see them.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "kind", msg.Kind, "id", msg.ID)
	return w.exportRecord(ctx, msg.Kind, msg.ID)
}

// ProcessPendingRecords exports up to one batch of records still marked
// pending. It keeps going past individual failures and returns the number
// of records successfully exported.
func (w *ExportWorker) ProcessPendingRecords(ctx context.Context) (int, error) {
	pending, err := w.storage.PendingRecords(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending records: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	exported := 0
	for _, p := range pending {
		if err := w.exportRecord(ctx, p.Kind, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending record",
				"kind", p.Kind, "id", p.ID, "error", err)
			continue
		}
		exported++
	}
	return exported, nil
}

func (w *ExportWorker) exportRecord(ctx context.Context, kind storage.RecordKind, id string) error {
	var appendErr error
	switch kind {
	case storage.KindDeposit:
		d, err := w.storage.GetDeposit(ctx, id)
		if err != nil {
			return fmt.Errorf("get deposit %s: %w", id, err)
		}
		appendErr = w.writer.AppendDeposit(ctx, d)
	case storage.KindExpense:
		e, err := w.storage.GetExpense(ctx, id)
		if err != nil {
			return fmt.Errorf("get expense %s: %w", id, err)
		}
		appendErr = w.writer.AppendExpense(ctx, e)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}

	if appendErr != nil {
		if err := w.storage.MarkSyncError(ctx, kind, id); err != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "kind", kind, "id", id, "error", err)
		}
		return fmt.Errorf("append %s %s: %w", kind, id, appendErr)
	}
	if err := w.storage.MarkSynced(ctx, kind, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}
