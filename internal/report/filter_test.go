package report

import (
	"strings"
	"testing"

	"messbook/internal/core"
	"messbook/internal/ledger"
)

func seededStore(t *testing.T) *ledger.Store {
	t.Helper()
	s := ledger.New(core.ModeShared)
	s.AddCategory("Veg")
	s.AddCategory("Fish")

	add := func(day, month int, items string, cents int64) {
		t.Helper()
		if _, err := s.AddExpense(core.Expense{
			Amount: core.Money{Cents: cents},
			Date:   core.NewDate(2024, month, day),
			Items:  items,
		}); err != nil {
			t.Fatal(err)
		}
	}
	add(20, 1, "Fish", 2000)
	add(5, 1, "Veg", 1000)
	add(3, 2, "Veg", 4000)

	if _, err := s.AddDeposit(core.Deposit{Amount: core.Money{Cents: 50000}, Date: core.NewDate(2024, 1, 10), MemberID: "m1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddDeposit(core.Deposit{Amount: core.Money{Cents: 10000}, Date: core.NewDate(2024, 1, 2), MemberID: "m2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddDeposit(core.Deposit{Amount: core.Money{Cents: 7000}, Date: core.NewDate(2023, 1, 15), MemberID: "m1"}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMonthFilterMatchesYearAndMonth(t *testing.T) {
	snap := seededStore(t).Snapshot()

	deps := MonthDeposits(snap, 2024, 1)
	if len(deps) != 2 {
		t.Fatalf("got %d deposits", len(deps))
	}
	// January 2023 must not leak in: equality, not a rolling window.
	for _, d := range deps {
		if d.Date.Year() != 2024 {
			t.Fatalf("wrong year: %s", d.Date)
		}
	}
	// Ascending date order.
	if deps[0].Date.Day() != 2 || deps[1].Date.Day() != 10 {
		t.Fatalf("wrong order: %s, %s", deps[0].Date, deps[1].Date)
	}

	exps := MonthExpenses(snap, 2024, 1, CategorySelection{})
	if len(exps) != 2 {
		t.Fatalf("got %d expenses", len(exps))
	}
	if exps[0].Items != "Veg" || exps[1].Items != "Fish" {
		t.Fatalf("wrong order: %v", exps)
	}
}

func TestCategorySelectionEmptyMeansAll(t *testing.T) {
	snap := seededStore(t).Snapshot()

	all := MonthExpenses(snap, 2024, 1, NewCategorySelection(nil))
	if len(all) != 2 {
		t.Fatalf("empty selection must show all, got %d", len(all))
	}

	fish := MonthExpenses(snap, 2024, 1, NewCategorySelection([]string{"Fish"}))
	if len(fish) != 1 || fish[0].Items != "Fish" {
		t.Fatalf("got %v", fish)
	}
}

func TestSelectAllIsConcrete(t *testing.T) {
	s := seededStore(t)
	sel := SelectAll(s.Snapshot())
	if sel.IsEmpty() {
		t.Fatal("select-all must not collapse into the no-filter state")
	}

	// A category added after the selection is not covered by it,
	// while the empty selection picks it up automatically.
	s.AddCategory("Snacks")
	s.AddExpense(core.Expense{Amount: core.Money{Cents: 500}, Date: core.NewDate(2024, 1, 25), Items: "Snacks"})
	snap := s.Snapshot()

	if got := len(MonthExpenses(snap, 2024, 1, sel)); got != 2 {
		t.Fatalf("stale select-all should see 2 expenses, got %d", got)
	}
	if got := len(MonthExpenses(snap, 2024, 1, CategorySelection{})); got != 3 {
		t.Fatalf("no-filter should see 3 expenses, got %d", got)
	}
	// Re-triggering select-all covers the new category.
	if got := len(MonthExpenses(snap, 2024, 1, SelectAll(snap))); got != 3 {
		t.Fatalf("fresh select-all should see 3 expenses, got %d", got)
	}
}

func TestRecentOrdersDescending(t *testing.T) {
	snap := seededStore(t).Snapshot()

	exps := RecentExpenses(snap, CategorySelection{})
	if len(exps) != 3 {
		t.Fatalf("got %d", len(exps))
	}
	if exps[0].Date.Month() != 2 {
		t.Fatalf("most recent first, got %s", exps[0].Date)
	}

	deps := RecentDeposits(snap)
	if deps[len(deps)-1].Date.Year() != 2023 {
		t.Fatalf("oldest last, got %s", deps[len(deps)-1].Date)
	}
}

func TestBuildSummaryTotals(t *testing.T) {
	snap := seededStore(t).Snapshot()
	sum := BuildSummary(snap, 2024, 1, CategorySelection{})

	if sum.DepositTotal.Cents != 60000 {
		t.Fatalf("got deposit total %d", sum.DepositTotal.Cents)
	}
	if sum.ExpenseTotal.Cents != 3000 {
		t.Fatalf("got expense total %d", sum.ExpenseTotal.Cents)
	}
	// Cash in hand is global: all deposits minus all expenses.
	if want := int64(67000 - 7000); sum.CashInHand.Cents != want {
		t.Fatalf("got cash in hand %d, want %d", sum.CashInHand.Cents, want)
	}
}

func TestShareTextDeterministic(t *testing.T) {
	snap := seededStore(t).Snapshot()
	sum := BuildSummary(snap, 2024, 1, CategorySelection{})

	names := map[string]string{"m1": "Rahim", "m2": "Karim"}
	text := sum.ShareText(func(id string) string { return names[id] })

	if text != sum.ShareText(func(id string) string { return names[id] }) {
		t.Fatal("share text must be deterministic")
	}
	// Deposits come before expenses, each in ascending order.
	iKarim := strings.Index(text, "Karim")
	iRahim := strings.Index(text, "Rahim")
	iVeg := strings.Index(text, "Veg")
	iFish := strings.Index(text, "Fish")
	if iKarim < 0 || iRahim < 0 || iVeg < 0 || iFish < 0 {
		t.Fatalf("missing records in:\n%s", text)
	}
	if !(iKarim < iRahim && iRahim < iVeg && iVeg < iFish) {
		t.Fatalf("wrong record order in:\n%s", text)
	}
	for _, want := range []string{"Total deposits: 600.00", "Total expenses: 30.00", "Cash in hand: 600.00"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}
