// Calendar-precise remaining-time computation.
package luck

import "time"

// remainingBetween computes the calendar time from `from` until `to` by
// greedy subtraction: whole years while the result stays within `to`, then
// whole months, then whole days, then hours and minutes from the remainder.
// Millisecond division would misstate spans across variable-length months
// and leap years; users expect "2 years 3 months 10 days" against real
// calendar boundaries.
func remainingBetween(from, to time.Time) Remaining {
	if !from.Before(to) {
		return Remaining{}
	}

	years := 0
	for !from.AddDate(years+1, 0, 0).After(to) {
		years++
	}
	// A remainder of a full cycle or more means the resolution picked the
	// wrong cycle; cap at exactly ten years so the defect is visible.
	if years >= yearsPerCycle {
		return Remaining{Years: yearsPerCycle}
	}
	cur := from.AddDate(years, 0, 0)

	months := 0
	for !cur.AddDate(0, months+1, 0).After(to) {
		months++
	}
	cur = cur.AddDate(0, months, 0)

	days := 0
	for !cur.AddDate(0, 0, days+1).After(to) {
		days++
	}
	cur = cur.AddDate(0, 0, days)

	rest := to.Sub(cur)
	return Remaining{
		Years:   years,
		Months:  months,
		Days:    days,
		Hours:   int(rest.Hours()),
		Minutes: int(rest.Minutes()) % 60,
	}
}

// Zero reports whether no time remains.
func (r Remaining) Zero() bool {
	return r == Remaining{}
}
