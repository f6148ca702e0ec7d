package dates

import (
	"fmt"
	"time"
)

// The engine works with civil dates only; every time.Time produced here is a
// UTC midnight.

// Parse accepts DD/MM/YYYY and ISO YYYY-MM-DD.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseCompetence accepts MM/YYYY, DD/MM/YYYY and ISO dates and truncates the
// result to the first day of the month.
func ParseCompetence(s string) (time.Time, error) {
	if t, err := time.Parse("01/2006", s); err == nil {
		return t, nil
	}
	t, err := Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid competence %q", s)
	}
	return FirstOfMonth(t), nil
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FormatBR renders DD/MM/YYYY for human-facing text.
func FormatBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatISO renders YYYY-MM-DD for machine consumers.
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatCompetence renders MM/YYYY.
func FormatCompetence(t time.Time) string {
	return t.Format("01/2006")
}
