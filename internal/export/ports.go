// Package export defines the outbound port for backing up ledger records to
// an external sheet, plus its adapters.
package export

import (
	"context"

	"messbook/internal/core"
)

type (
	// DepositWriter appends one deposit row to the backup sheet.
	DepositWriter interface {
		AppendDeposit(ctx context.Context, d core.Deposit) error
	}

	// ExpenseWriter appends one expense row to the backup sheet.
	ExpenseWriter interface {
		AppendExpense(ctx context.Context, e core.Expense) error
	}

	// RecordWriter is what the export worker needs.
	RecordWriter interface {
		DepositWriter
		ExpenseWriter
	}
)
