// Package services orchestrates ledger mutations across the in-memory
// store, SQLite and AMQP. The store is authoritative for reads; every
// mutation is written through to SQLite and, for exportable records,
// announced on the sync exchange.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"messbook/internal/amqp"
	"messbook/internal/assistant"
	"messbook/internal/core"
	"messbook/internal/ledger"
	"messbook/internal/storage"
)

// ErrProposalRejected means an assistant proposal cannot be applied as a
// ledger record.
var ErrProposalRejected = errors.New("proposal cannot be applied")

// LedgerService is the single writer over the store. All mutations take its
// lock, so handlers and the assistant flow can share one instance.
type LedgerService struct {
	mu         sync.Mutex
	store      *ledger.Store
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(store *ledger.Store, storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Snapshot returns a deep copy of the current ledger state for readers.
func (s *LedgerService) Snapshot() ledger.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// AddMember stores a member and writes it through.
func (s *LedgerService) AddMember(ctx context.Context, m core.Member) (core.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.store.AddMember(m)
	if err != nil {
		return core.Member{}, err
	}
	if err := s.storage.InsertMember(ctx, added); err != nil {
		slog.ErrorContext(ctx, "Failed to persist member", "id", added.ID, "error", err)
		// Don't fail the request - the record is in the ledger
	}
	return added, nil
}

// DeleteMember removes a member. Unknown ids are a no-op.
func (s *LedgerService) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.DeleteMember(id) {
		return nil
	}
	if err := s.storage.DeleteMember(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to delete persisted member", "id", id, "error", err)
	}
	return nil
}

// AddDeposit stores a deposit, writes it through and publishes a sync
// message for the export worker.
func (s *LedgerService) AddDeposit(ctx context.Context, d core.Deposit) (core.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.store.AddDeposit(d)
	if err != nil {
		return core.Deposit{}, err
	}
	if err := s.storage.InsertDeposit(ctx, added); err != nil {
		slog.ErrorContext(ctx, "Failed to persist deposit", "id", added.ID, "error", err)
	}
	s.publishSync(ctx, storage.KindDeposit, added.ID)
	return added, nil
}

// DeleteDeposit removes a deposit. Unknown ids are a no-op.
func (s *LedgerService) DeleteDeposit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.DeleteDeposit(id) {
		return nil
	}
	if err := s.storage.DeleteDeposit(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to delete persisted deposit", "id", id, "error", err)
	}
	return nil
}

// AddExpense stores an expense, writes it through and publishes a sync
// message for the export worker.
func (s *LedgerService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.store.AddExpense(e)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.storage.InsertExpense(ctx, added); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expense", "id", added.ID, "error", err)
	}
	s.publishSync(ctx, storage.KindExpense, added.ID)
	return added, nil
}

// DeleteExpense removes an expense. Unknown ids are a no-op.
func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.DeleteExpense(id) {
		return nil
	}
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to delete persisted expense", "id", id, "error", err)
	}
	return nil
}

// ToggleMeal flips one attendance flag and writes the entry through.
func (s *LedgerService) ToggleMeal(ctx context.Context, date core.Date, memberID string, meal core.MealType) (core.MealEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, entry, err := s.store.ToggleMeal(date, memberID, meal)
	if err != nil {
		return core.MealEntry{}, err
	}
	if err := s.storage.UpsertMealEntry(ctx, key, entry); err != nil {
		slog.ErrorContext(ctx, "Failed to persist meal entry",
			"date", key.Date, "member", key.MemberID, "error", err)
	}
	return entry, nil
}

// AddCategory appends a category name. Exact duplicates are a no-op.
func (s *LedgerService) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.AddCategory(name) {
		return nil
	}
	if err := s.storage.InsertCategory(ctx, name); err != nil {
		slog.ErrorContext(ctx, "Failed to persist category", "name", name, "error", err)
	}
	return nil
}

// DeleteCategory removes a category name; expense history keeps the label.
func (s *LedgerService) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.DeleteCategory(name) {
		return nil
	}
	if err := s.storage.DeleteCategory(ctx, name); err != nil {
		slog.ErrorContext(ctx, "Failed to delete persisted category", "name", name, "error", err)
	}
	return nil
}

// RenameCategory renames a category and optionally rewrites matching expense
// history. Rewritten expenses go back through the sync pipeline so the
// backup sheet catches up.
func (s *LedgerService) RenameCategory(ctx context.Context, oldName, newName string, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewritten, applied := s.store.RenameCategory(oldName, newName, cascade)
	if !applied {
		return nil
	}
	if err := s.storage.RenameCategory(ctx, oldName, newName, cascade); err != nil {
		slog.ErrorContext(ctx, "Failed to persist category rename",
			"old", oldName, "new", newName, "error", err)
	}
	for _, e := range rewritten {
		s.publishSync(ctx, storage.KindExpense, e.ID)
	}
	return nil
}

// ApplyProposal turns a confirmed assistant proposal into a ledger record.
// UNKNOWN proposals and malformed fields are rejected; the record then goes
// through the normal add path with full validation.
func (s *LedgerService) ApplyProposal(ctx context.Context, p *assistant.Proposal) (string, error) {
	amount, err := core.MoneyFromFloat(p.Amount)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProposalRejected, err)
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProposalRejected, err)
	}

	switch p.ActionType {
	case assistant.ActionDeposit:
		added, err := s.AddDeposit(ctx, core.Deposit{
			Amount:   amount,
			Date:     date,
			MemberID: p.MemberID,
			Notes:    p.Summary,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrProposalRejected, err)
		}
		return added.ID, nil
	case assistant.ActionExpense:
		added, err := s.AddExpense(ctx, core.Expense{
			Amount:      amount,
			Date:        date,
			Items:       p.Items,
			ShopperName: p.ShopperName,
			Notes:       p.Summary,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrProposalRejected, err)
		}
		return added.ID, nil
	default:
		return "", fmt.Errorf("%w: action %q", ErrProposalRejected, p.ActionType)
	}
}

// Language reads the report language setting.
func (s *LedgerService) Language(ctx context.Context) (string, error) {
	return s.storage.Language(ctx)
}

// SetLanguage stores the report language setting.
func (s *LedgerService) SetLanguage(ctx context.Context, lang string) error {
	return s.storage.SetLanguage(ctx, lang)
}

func (s *LedgerService) publishSync(ctx context.Context, kind storage.RecordKind, id string) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.NewRecordSyncMessage(kind, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"kind", kind, "id", id, "error", err)
		// Don't fail the request - the catch-up scan will retry it
	}
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
