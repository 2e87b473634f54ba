package core

import "testing"

func TestParseMealType(t *testing.T) {
	for _, ok := range []string{"breakfast", "lunch", "dinner"} {
		if _, err := ParseMealType(ok); err != nil {
			t.Fatalf("%q: expected ok, got %v", ok, err)
		}
	}
	if _, err := ParseMealType("brunch"); err == nil {
		t.Fatal("expected error for unknown meal")
	}
}

func TestMealEntryToggle(t *testing.T) {
	e := DefaultMealEntry()
	e, err := e.Toggle(Breakfast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Breakfast || !e.Lunch || !e.Dinner {
		t.Fatalf("toggle must flip exactly one flag, got %+v", e)
	}
	e, _ = e.Toggle(Breakfast)
	if e != DefaultMealEntry() {
		t.Fatalf("double toggle should restore the default, got %+v", e)
	}
}

func TestWeightsForMode(t *testing.T) {
	shared := WeightsForMode(ModeShared)
	if shared.Breakfast != 0.5 || shared.Lunch != 1.0 || shared.Dinner != 1.0 {
		t.Fatalf("unexpected shared weights %+v", shared)
	}
	single := WeightsForMode(ModeSingle)
	if single.Breakfast != 1.0 || single.Lunch != 1.0 || single.Dinner != 1.0 {
		t.Fatalf("unexpected single weights %+v", single)
	}
}

func TestMealEntryUnits(t *testing.T) {
	w := WeightsForMode(ModeShared)
	cases := []struct {
		entry MealEntry
		want  float64
	}{
		{DefaultMealEntry(), 2.5},
		{MealEntry{Lunch: true, Dinner: true}, 2.0},
		{MealEntry{Breakfast: true}, 0.5},
		{MealEntry{}, 0},
	}
	for i, tc := range cases {
		if got := tc.entry.Units(w); got != tc.want {
			t.Fatalf("case %d: got %v want %v", i, got, tc.want)
		}
	}

	// Single-user mode weighs breakfast as a full meal.
	if got := DefaultMealEntry().Units(WeightsForMode(ModeSingle)); got != 3.0 {
		t.Fatalf("got %v want 3.0", got)
	}
}
