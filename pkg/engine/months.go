package engine

import "time"

// truncMonth returns the first day of t's month at UTC midnight.
func truncMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// truncDay returns t's date at UTC midnight.
func truncDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthsBetween counts whole calendar months from one date's month to
// another's. Both sides are month-truncated first, so day-of-month never
// bleeds fractional periods into the result.
func monthsBetween(from, to time.Time) int {
	f := truncMonth(from)
	t := truncMonth(to)
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}
