package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"messbook/internal/amqp"
	"messbook/internal/core"
	"messbook/internal/export/memory"
	"messbook/internal/storage"
)

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "messbook.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedDeposit(t *testing.T, repo *storage.SQLiteRepository, id string, cents int64) {
	t.Helper()
	date, _ := core.ParseDate("2024-01-05")
	err := repo.InsertDeposit(context.Background(), core.Deposit{
		ID:       id,
		Amount:   core.Money{Cents: cents},
		Date:     date,
		MemberID: "m1",
	})
	if err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
}

func seedExpense(t *testing.T, repo *storage.SQLiteRepository, id string, cents int64) {
	t.Helper()
	date, _ := core.ParseDate("2024-01-06")
	err := repo.InsertExpense(context.Background(), core.Expense{
		ID:          id,
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Items:       "Fish",
		ShopperName: "Karim",
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
}

func TestHandleSyncMessageExportsDeposit(t *testing.T) {
	repo := newTestRepo(t)
	sheet := memory.New()
	w := NewExportWorker(repo, sheet, 10)
	ctx := context.Background()

	seedDeposit(t, repo, "d1", 50000)

	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(storage.KindDeposit, "d1")); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	deposits := sheet.Deposits()
	if len(deposits) != 1 || deposits[0].ID != "d1" || deposits[0].Amount.Cents != 50000 {
		t.Fatalf("sheet deposits = %+v", deposits)
	}

	pending, err := repo.PendingRecords(ctx, 10)
	if err != nil {
		t.Fatalf("PendingRecords: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("record still pending after export: %+v", pending)
	}
}

func TestHandleSyncMessageUnknownRecord(t *testing.T) {
	repo := newTestRepo(t)
	w := NewExportWorker(repo, memory.New(), 10)

	err := w.HandleSyncMessage(context.Background(), amqp.NewRecordSyncMessage(storage.KindExpense, "nope"))
	if err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestHandleSyncMessageAppendFailureFlagsRecord(t *testing.T) {
	repo := newTestRepo(t)
	sheet := memory.New()
	w := NewExportWorker(repo, sheet, 10)
	ctx := context.Background()

	seedExpense(t, repo, "e1", 12000)
	sheet.FailNext = errors.New("sheet unavailable")

	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(storage.KindExpense, "e1")); err == nil {
		t.Fatal("expected append failure to propagate")
	}

	// Flagged as error: the pending scan must not pick it up again.
	pending, err := repo.PendingRecords(ctx, 10)
	if err != nil {
		t.Fatalf("PendingRecords: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("errored record still pending: %+v", pending)
	}
}

func TestProcessPendingRecords(t *testing.T) {
	repo := newTestRepo(t)
	sheet := memory.New()
	w := NewExportWorker(repo, sheet, 10)
	ctx := context.Background()

	seedDeposit(t, repo, "d1", 50000)
	seedExpense(t, repo, "e1", 12000)

	exported, err := w.ProcessPendingRecords(ctx)
	if err != nil {
		t.Fatalf("ProcessPendingRecords: %v", err)
	}
	if exported != 2 {
		t.Fatalf("exported = %d, want 2", exported)
	}
	if len(sheet.Deposits()) != 1 || len(sheet.Expenses()) != 1 {
		t.Fatalf("sheet rows: deposits=%d expenses=%d", len(sheet.Deposits()), len(sheet.Expenses()))
	}

	// Second run finds nothing.
	exported, err = w.ProcessPendingRecords(ctx)
	if err != nil || exported != 0 {
		t.Fatalf("second run exported = %d, err = %v", exported, err)
	}
}

func TestProcessPendingRecordsContinuesPastFailures(t *testing.T) {
	repo := newTestRepo(t)
	sheet := memory.New()
	w := NewExportWorker(repo, sheet, 10)
	ctx := context.Background()

	seedDeposit(t, repo, "d1", 100)
	seedDeposit(t, repo, "d2", 200)
	sheet.FailNext = errors.New("sheet unavailable")

	exported, err := w.ProcessPendingRecords(ctx)
	if err != nil {
		t.Fatalf("ProcessPendingRecords: %v", err)
	}
	if exported != 1 {
		t.Fatalf("exported = %d, want 1", exported)
	}
}

func TestProcessPendingRecordsRespectsBatchSize(t *testing.T) {
	repo := newTestRepo(t)
	sheet := memory.New()
	w := NewExportWorker(repo, sheet, 1)
	ctx := context.Background()

	seedDeposit(t, repo, "d1", 100)
	seedDeposit(t, repo, "d2", 200)

	exported, err := w.ProcessPendingRecords(ctx)
	if err != nil || exported != 1 {
		t.Fatalf("exported = %d, err = %v, want 1", exported, err)
	}
	exported, err = w.ProcessPendingRecords(ctx)
	if err != nil || exported != 1 {
		t.Fatalf("second batch exported = %d, err = %v, want 1", exported, err)
	}
}
