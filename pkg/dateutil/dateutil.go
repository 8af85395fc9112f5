package dateutil

import (
	"fmt"
	"time"
)

// StartOfMonth returns midnight on the first day of the month containing date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// AddMonths adds months to a date, clamping to the last day of the target
// month instead of overflowing into the next one (Jan 31 + 1 = Feb 28/29).
func AddMonths(date time.Time, months int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	target := first.AddDate(0, months, 0)
	day := date.Day()
	if last := DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthsBetween returns the number of whole calendar months from one date to another
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PayoffDate returns the month in which the final payment falls when the
// first payment is made one month after start.
func PayoffDate(start time.Time, termMonths int) time.Time {
	return StartOfMonth(AddMonths(StartOfMonth(start), termMonths))
}

// FormatMonthYear renders a date as "Jan 2006"
func FormatMonthYear(date time.Time) string {
	return date.Format("Jan 2006")
}

// FormatMonths renders a month count as a human duration, e.g. "3 years 4 months".
func FormatMonths(months int) string {
	if months < 0 {
		months = -months
	}
	years, rem := months/12, months%12
	switch {
	case years == 0:
		return plural(rem, "month")
	case rem == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rem, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
