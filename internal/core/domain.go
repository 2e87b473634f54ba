package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a civil calendar date; the time-of-day part is always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is an amount of taka stored as integer cents.
	Money struct {
		Cents int64
	}

	// Member is a person sharing the mess fund.
	Member struct {
		ID         string
		Name       string
		RoomNo     string
		JoinedDate Date
	}

	// Deposit is money paid into the shared fund. MemberID is empty in
	// single-user mode.
	Deposit struct {
		ID       string
		Amount   Money
		Date     Date
		MemberID string
		Notes    string
	}

	// Expense is money spent from the fund. Items doubles as the category
	// label and references the category set by value, not by id.
	Expense struct {
		ID          string
		Amount      Money
		Date        Date
		Items       string
		ShopperName string
		Notes       string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyItems    = errors.New("empty items")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date in UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// InMonth reports whether the date falls in the given calendar year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if err := m.JoinedDate.Validate(); err != nil {
		return err
	}
	return nil
}

func (d Deposit) Validate() error {
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if err := d.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Items) == "" {
		return ErrEmptyItems
	}
	if len(e.Items) > 200 {
		return errors.New("items too long (max 200 characters)")
	}
	return nil
}
