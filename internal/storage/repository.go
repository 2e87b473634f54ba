// Package storage persists ledger snapshots in SQLite. The in-memory store
// remains the source of truth for a session; this layer rehydrates it at
// startup and records every mutation so the next session starts where the
// last one ended.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"messbook/internal/core"
	"messbook/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadSnapshot reads every collection and assembles the snapshot used to
// rehydrate the in-memory store at startup.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, mode core.Mode) (ledger.Snapshot, error) {
	snap := ledger.Snapshot{
		Mode:  mode,
		Meals: make(map[core.MealKey]core.MealEntry),
	}

	members, err := r.listMembers(ctx)
	if err != nil {
		return snap, fmt.Errorf("load members: %w", err)
	}
	snap.Members = members

	deposits, err := r.listDeposits(ctx)
	if err != nil {
		return snap, fmt.Errorf("load deposits: %w", err)
	}
	snap.Deposits = deposits

	expenses, err := r.listExpenses(ctx)
	if err != nil {
		return snap, fmt.Errorf("load expenses: %w", err)
	}
	snap.Expenses = expenses

	meals, err := r.listMealEntries(ctx)
	if err != nil {
		return snap, fmt.Errorf("load meal entries: %w", err)
	}
	snap.Meals = meals

	categories, err := r.listCategories(ctx)
	if err != nil {
		return snap, fmt.Errorf("load categories: %w", err)
	}
	snap.Categories = categories

	slog.InfoContext(ctx, "Snapshot loaded from SQLite",
		"members", len(snap.Members),
		"deposits", len(snap.Deposits),
		"expenses", len(snap.Expenses),
		"meal_entries", len(snap.Meals),
		"categories", len(snap.Categories))

	return snap, nil
}

// Language reads the persisted UI language preference, defaulting to "en".
func (r *SQLiteRepository) Language(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'language'`).Scan(&value)
	if err == sql.ErrNoRows {
		return "en", nil
	}
	if err != nil {
		return "", fmt.Errorf("read language setting: %w", err)
	}
	return value, nil
}

// SetLanguage stores the UI language preference.
func (r *SQLiteRepository) SetLanguage(ctx context.Context, lang string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('language', ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, lang)
	if err != nil {
		return fmt.Errorf("set language setting: %w", err)
	}
	return nil
}
