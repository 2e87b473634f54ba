package report

import (
	"fmt"
	"strings"
	"time"

	"messbook/internal/core"
	"messbook/internal/ledger"
	"messbook/internal/stats"
)

// Summary is the filtered month view plus the totals shown alongside it.
type Summary struct {
	Year     int
	Month    int
	Deposits []core.Deposit
	Expenses []core.Expense

	DepositTotal core.Money
	ExpenseTotal core.Money
	CashInHand   core.Money // global, not month-scoped
}

// BuildSummary assembles the month report from one snapshot. CashInHand is
// the global figure from the aggregation engine so the shared text always
// matches the dashboard.
func BuildSummary(snap ledger.Snapshot, year, month int, sel CategorySelection) Summary {
	sum := Summary{
		Year:     year,
		Month:    month,
		Deposits: MonthDeposits(snap, year, month),
		Expenses: MonthExpenses(snap, year, month, sel),
	}
	for _, d := range sum.Deposits {
		sum.DepositTotal = sum.DepositTotal.Add(d.Amount)
	}
	for _, e := range sum.Expenses {
		sum.ExpenseTotal = sum.ExpenseTotal.Add(e.Amount)
	}
	sum.CashInHand = stats.Compute(snap).CashInHand
	return sum
}

// ShareText renders the summary as plain text for sharing. Record order is
// ascending by date in both sections; the layout is simple on purpose, the
// record set and totals are the contract.
func (s Summary) ShareText(memberName func(id string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mess report - %s %d\n", time.Month(s.Month), s.Year)

	b.WriteString("\nDeposits:\n")
	if len(s.Deposits) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, d := range s.Deposits {
		name := d.MemberID
		if memberName != nil {
			name = memberName(d.MemberID)
		}
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n", d.Date, name, d.Amount)
	}
	fmt.Fprintf(&b, "Total deposits: %s\n", s.DepositTotal)

	b.WriteString("\nExpenses:\n")
	if len(s.Expenses) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range s.Expenses {
		fmt.Fprintf(&b, "  %s  %s  %s\n", e.Date, e.Items, e.Amount)
	}
	fmt.Fprintf(&b, "Total expenses: %s\n", s.ExpenseTotal)

	fmt.Fprintf(&b, "\nCash in hand: %s\n", s.CashInHand)
	return b.String()
}
