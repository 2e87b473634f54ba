package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 1 || d.Day() != 5 {
		t.Fatalf("unexpected date %v", d)
	}

	for _, bad := range []string{"", "2024-13-01", "05-01-2024", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDateInMonth(t *testing.T) {
	d := NewDate(2024, 2, 29)
	if !d.InMonth(2024, 2) {
		t.Fatal("expected date in month")
	}
	if d.InMonth(2024, 3) || d.InMonth(2023, 2) {
		t.Fatal("month equality must match both year and month")
	}
}

func TestMemberValidate(t *testing.T) {
	good := Member{Name: "Rahim", RoomNo: "12", JoinedDate: NewDate(2024, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Member{Name: "  ", JoinedDate: NewDate(2024, 1, 1)}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := (Member{Name: "Rahim", JoinedDate: Date{Time: time.Time{}}}).Validate(); err == nil {
		t.Fatal("expected error for zero date")
	}
}

func TestDepositValidate(t *testing.T) {
	good := Deposit{Amount: Money{Cents: 50000}, Date: NewDate(2024, 1, 1), MemberID: "m1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Zero amounts are allowed, negative ones are not.
	if err := (Deposit{Amount: Money{Cents: 0}, Date: NewDate(2024, 1, 1)}).Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
	if err := (Deposit{Amount: Money{Cents: -1}, Date: NewDate(2024, 1, 1)}).Validate(); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if err := (Deposit{Amount: Money{Cents: 100}}).Validate(); err == nil {
		t.Fatal("expected error for zero date")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Amount: Money{Cents: 30000}, Date: NewDate(2024, 1, 5), Items: "Groceries"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: -100}, Date: NewDate(2024, 1, 5), Items: "Rice"},
		{Amount: Money{Cents: 100}, Items: "Rice"}, // zero date
		{Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 5), Items: "   "},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
