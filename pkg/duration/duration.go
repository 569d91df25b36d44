// Package duration computes elapsed time between two DD/MM/YYYY dates and
// renders it as a French duration phrase ("2 ans 3 mois").
package duration

import (
	"fmt"
	"regexp"
	"time"
)

// Layout is the Go time layout for DD/MM/YYYY dates.
const Layout = "02/01/2006"

// Undetermined is returned when a date range was found but could not be parsed.
const Undetermined = "Durée non déterminée"

// Pattern matches a "DD/MM/YYYY - DD/MM/YYYY" range anywhere in a line.
// Spaces around the hyphen may be Unicode spaces such as U+00A0 or U+202F.
var Pattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})[\s\p{Zs}]*-[\s\p{Zs}]*(\d{2}/\d{2}/\d{4})`)

// Span is an elapsed duration in whole months.
type Span struct {
	Years  int
	Months int
	Total  int
}

// NewSpan decomposes a month count into years and months.
func NewSpan(total int) Span {
	years, months := Split(total)
	return Span{Years: years, Months: months, Total: total}
}

// String renders the span as a French phrase.
func (s Span) String() string {
	return Render(s.Years, s.Months)
}

// FromText finds the first date range in line and renders its duration.
// Returns "" when the line holds no date range.
func FromText(line string) string {
	m := Pattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return Compute(m[1], m[2])
}

// Compute renders the duration between two DD/MM/YYYY dates.
// Returns Undetermined if either date is not a valid calendar date.
// Year 0000 is not a valid year.
func Compute(start, end string) string {
	s, err := time.Parse(Layout, start)
	if err != nil {
		return Undetermined
	}
	e, err := time.Parse(Layout, end)
	if err != nil {
		return Undetermined
	}
	if s.Year() < 1 || e.Year() < 1 {
		return Undetermined
	}
	return NewSpan(MonthsBetween(s, e)).String()
}

// MonthsBetween returns the number of calendar months from start to end.
// The day of month is ignored; the result is negative when end precedes start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
}

// Split divides total months into years and months using floor division,
// so the months part is always in [0, 12).
func Split(total int) (years, months int) {
	years = total / 12
	months = total % 12
	if months < 0 {
		months += 12
		years--
	}
	return years, months
}

// Render formats years and months as "N an(s) M mois", "N an(s)" or "M mois".
func Render(years, months int) string {
	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%d %s %d mois", years, yearWord(years), months)
	case years > 0:
		return fmt.Sprintf("%d %s", years, yearWord(years))
	default:
		return fmt.Sprintf("%d mois", months)
	}
}

func yearWord(years int) string {
	if years > 1 {
		return "ans"
	}
	return "an"
}
