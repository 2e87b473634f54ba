package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"messbook/internal/assistant"
	"messbook/internal/core"
	"messbook/internal/ledger"
	"messbook/internal/storage"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "messbook.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	// nil AMQP client: publishing is skipped, the catch-up scan covers it
	return NewLedgerService(ledger.New(core.ModeShared), repo, nil)
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestAddDepositWritesThrough(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddDeposit(ctx, core.Deposit{
		Amount:   core.Money{Cents: 50000},
		Date:     mustDate(t, "2024-01-05"),
		MemberID: "m1",
	})
	if err != nil {
		t.Fatalf("AddDeposit: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected assigned id")
	}

	snap := svc.Snapshot()
	if len(snap.Deposits) != 1 || snap.Deposits[0].ID != added.ID {
		t.Fatalf("store deposits = %+v", snap.Deposits)
	}

	persisted, err := svc.storage.LoadSnapshot(ctx, core.ModeShared)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(persisted.Deposits) != 1 || persisted.Deposits[0].Amount.Cents != 50000 {
		t.Fatalf("persisted deposits = %+v", persisted.Deposits)
	}
}

func TestAddDepositInvalidNotPersisted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, core.Deposit{
		Amount: core.Money{Cents: -5},
		Date:   mustDate(t, "2024-01-05"),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	persisted, err := svc.storage.LoadSnapshot(ctx, core.ModeShared)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(persisted.Deposits) != 0 {
		t.Fatalf("invalid deposit was persisted: %+v", persisted.Deposits)
	}
}

func TestDeleteUnknownIsNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.DeleteDeposit(ctx, "missing"); err != nil {
		t.Fatalf("DeleteDeposit: %v", err)
	}
	if err := svc.DeleteExpense(ctx, "missing"); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if err := svc.DeleteMember(ctx, "missing"); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
}

func TestToggleMealWritesThrough(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	date := mustDate(t, "2024-01-10")

	entry, err := svc.ToggleMeal(ctx, date, "m1", core.Breakfast)
	if err != nil {
		t.Fatalf("ToggleMeal: %v", err)
	}
	if entry.Breakfast || !entry.Lunch || !entry.Dinner {
		t.Fatalf("entry = %+v", entry)
	}

	persisted, err := svc.storage.LoadSnapshot(ctx, core.ModeShared)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	got, ok := persisted.Meals[core.NewMealKey(date, "m1")]
	if !ok || got != entry {
		t.Fatalf("persisted meal entry = %+v, ok=%v", got, ok)
	}
}

func TestRenameCategoryCascadePersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddCategory(ctx, "Veg"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if _, err := svc.AddExpense(ctx, core.Expense{
		Amount: core.Money{Cents: 1200},
		Date:   mustDate(t, "2024-01-03"),
		Items:  "Veg",
	}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	if err := svc.RenameCategory(ctx, "Veg", "Vegetables", true); err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}

	persisted, err := svc.storage.LoadSnapshot(ctx, core.ModeShared)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(persisted.Categories) != 1 || persisted.Categories[0] != "Vegetables" {
		t.Fatalf("persisted categories = %v", persisted.Categories)
	}
	if len(persisted.Expenses) != 1 || persisted.Expenses[0].Items != "Vegetables" {
		t.Fatalf("persisted expenses = %+v", persisted.Expenses)
	}
}

func TestApplyProposal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.ApplyProposal(ctx, &assistant.Proposal{
		ActionType: assistant.ActionDeposit,
		Amount:     500,
		Date:       "2024-01-15",
		MemberID:   "m1",
		Summary:    "Rahim deposited 500",
	})
	if err != nil {
		t.Fatalf("ApplyProposal deposit: %v", err)
	}
	snap := svc.Snapshot()
	if len(snap.Deposits) != 1 || snap.Deposits[0].ID != id {
		t.Fatalf("deposits = %+v", snap.Deposits)
	}
	if snap.Deposits[0].Amount.Cents != 50000 {
		t.Fatalf("amount = %d, want 50000", snap.Deposits[0].Amount.Cents)
	}

	id, err = svc.ApplyProposal(ctx, &assistant.Proposal{
		ActionType:  assistant.ActionExpense,
		Amount:      120.5,
		Date:        "2024-01-15",
		ShopperName: "Karim",
		Items:       "Fish",
		Summary:     "bazar",
	})
	if err != nil {
		t.Fatalf("ApplyProposal expense: %v", err)
	}
	snap = svc.Snapshot()
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != id {
		t.Fatalf("expenses = %+v", snap.Expenses)
	}
	if snap.Expenses[0].Amount.Cents != 12050 {
		t.Fatalf("amount = %d, want 12050", snap.Expenses[0].Amount.Cents)
	}
}

func TestApplyProposalRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		p    *assistant.Proposal
	}{
		{"unknown action", &assistant.Proposal{ActionType: assistant.ActionUnknown, Amount: 10, Date: "2024-01-15"}},
		{"bad date", &assistant.Proposal{ActionType: assistant.ActionDeposit, Amount: 10, Date: "15/01/2024"}},
		{"negative amount", &assistant.Proposal{ActionType: assistant.ActionDeposit, Amount: -10, Date: "2024-01-15"}},
		{"expense without items", &assistant.Proposal{ActionType: assistant.ActionExpense, Amount: 10, Date: "2024-01-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ApplyProposal(ctx, tt.p); !errors.Is(err, ErrProposalRejected) {
				t.Fatalf("expected ErrProposalRejected, got %v", err)
			}
		})
	}

	if snap := svc.Snapshot(); len(snap.Deposits) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("rejected proposals mutated the ledger: %+v", snap)
	}
}

func TestLanguageSetting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lang, err := svc.Language(ctx)
	if err != nil || lang != "en" {
		t.Fatalf("default language = %q, %v", lang, err)
	}
	if err := svc.SetLanguage(ctx, "bn"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if lang, _ = svc.Language(ctx); lang != "bn" {
		t.Fatalf("language = %q, want bn", lang)
	}
}
