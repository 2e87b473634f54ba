package core

import "errors"

// Mode selects how the mess is run: a shared fund across members or a
// single-user book. The two modes key attendance differently and weigh
// breakfast differently.
type Mode string

const (
	ModeShared Mode = "shared"
	ModeSingle Mode = "single"
)

// MealType names one of the three daily meals.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

var ErrUnknownMealType = errors.New("unknown meal type")

// ParseMealType validates a wire-level meal name.
func ParseMealType(s string) (MealType, error) {
	switch MealType(s) {
	case Breakfast, Lunch, Dinner:
		return MealType(s), nil
	}
	return "", ErrUnknownMealType
}

// MealEntry records which meals were attended on one day. A day with no
// stored entry counts as all meals attended; that default is applied at
// read time, never written to storage.
type MealEntry struct {
	Breakfast bool
	Lunch     bool
	Dinner    bool
}

// DefaultMealEntry is the all-attended template a missing entry stands for.
func DefaultMealEntry() MealEntry {
	return MealEntry{Breakfast: true, Lunch: true, Dinner: true}
}

// Toggle returns the entry with exactly one flag flipped.
func (e MealEntry) Toggle(meal MealType) (MealEntry, error) {
	switch meal {
	case Breakfast:
		e.Breakfast = !e.Breakfast
	case Lunch:
		e.Lunch = !e.Lunch
	case Dinner:
		e.Dinner = !e.Dinner
	default:
		return e, ErrUnknownMealType
	}
	return e, nil
}

// MealKey addresses one attendance entry. MemberID is empty in single mode,
// so the key collapses to the date alone.
type MealKey struct {
	Date     string // YYYY-MM-DD
	MemberID string
}

// NewMealKey builds the attendance key for a date and optional member.
func NewMealKey(date Date, memberID string) MealKey {
	return MealKey{Date: date.String(), MemberID: memberID}
}

// MealWeights is the unit contribution of each attended meal.
type MealWeights struct {
	Breakfast float64
	Lunch     float64
	Dinner    float64
}

// WeightsForMode returns the unit-weight table for a mode. Shared messes
// count breakfast as half a meal; a single-user book counts it full.
func WeightsForMode(mode Mode) MealWeights {
	if mode == ModeSingle {
		return MealWeights{Breakfast: 1.0, Lunch: 1.0, Dinner: 1.0}
	}
	return MealWeights{Breakfast: 0.5, Lunch: 1.0, Dinner: 1.0}
}

// Units is the weighted meal-unit contribution of one entry.
func (e MealEntry) Units(w MealWeights) float64 {
	var units float64
	if e.Breakfast {
		units += w.Breakfast
	}
	if e.Lunch {
		units += w.Lunch
	}
	if e.Dinner {
		units += w.Dinner
	}
	return units
}
