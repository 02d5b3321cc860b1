// Package finance implements the salary-cycle budget core: period
// calculation, budget snapshots and money formatting. Everything here is
// pure and deterministic, so the package is safe for concurrent use.
package finance

import "time"

// Anchor identifies the user's salary reference point. It is a tagged
// value with two variants: a recurring day of month (1-31), or an explicit
// next pay date that recurs monthly on its day-of-month once it has passed.
type Anchor struct {
	day  int
	date time.Time
}

// DayOfMonth returns an anchor recurring on the given day of each month.
// The day is assumed to be in [1,31]; validation happens at the profile
// update boundary, not here.
func DayOfMonth(day int) Anchor {
	return Anchor{day: day}
}

// ExplicitDate returns an anchor for a concrete upcoming pay date.
func ExplicitDate(date time.Time) Anchor {
	return Anchor{date: normalizeDate(date)}
}

// AnchorFromProfile builds an anchor from the two nullable profile fields.
// An explicit date wins when both are set. ok is false when the profile
// has no salary anchor configured yet.
func AnchorFromProfile(day *int, date *time.Time) (anchor Anchor, ok bool) {
	if date != nil {
		return ExplicitDate(*date), true
	}
	if day != nil {
		return DayOfMonth(*day), true
	}
	return Anchor{}, false
}

// Period is the date range between two consecutive pay events. Start is
// the previous payday and acts as the inclusive lower bound for expense
// aggregation; NextSalary is the upcoming payday, the exclusive upper
// bound. Invariant: Start < NextSalary.
type Period struct {
	Start      time.Time
	NextSalary time.Time
}

// DaysLeft reports whole days from today until the next payday, never
// negative. Zero means today is payday.
func (p Period) DaysLeft(today time.Time) int {
	d := daysBetween(normalizeDate(today), p.NextSalary)
	if d < 0 {
		return 0
	}
	return d
}

// ComputePeriod determines the active salary period for today.
//
// An explicit pay date that has not passed yet is used verbatim as the
// next payday, with the period starting one calendar month earlier
// (clamped to the shorter month's last day). Otherwise the effective
// day-of-month drives the recurrence: if today is on or before this
// month's (clamped) payday the period ends there, else it ends on next
// month's payday. Month clamping is applied independently per month and
// crosses year boundaries.
func ComputePeriod(today time.Time, anchor Anchor) Period {
	today = normalizeDate(today)

	if !anchor.date.IsZero() && !anchor.date.Before(today) {
		return Period{
			Start:      monthDay(addMonths(anchor.date, -1), anchor.date.Day()),
			NextSalary: anchor.date,
		}
	}

	day := anchor.day
	if day == 0 {
		if anchor.date.IsZero() {
			// Unconfigured anchor: degrade to today's day-of-month so the
			// period is still well formed.
			day = today.Day()
		} else {
			// A passed explicit date recurs monthly on its day-of-month.
			day = anchor.date.Day()
		}
	}

	candidate := monthDay(today, day)
	if !today.After(candidate) {
		return Period{
			Start:      monthDay(addMonths(today, -1), day),
			NextSalary: candidate,
		}
	}
	return Period{
		Start:      candidate,
		NextSalary: monthDay(addMonths(today, 1), day),
	}
}

// normalizeDate strips the time-of-day and timezone so all period
// arithmetic happens on UTC midnights and day counts are exact.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthDay returns the given day within t's month, clamped to the month's
// last day.
func monthDay(t time.Time, day int) time.Time {
	y, m, _ := t.Date()
	if last := daysInMonth(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// addMonths shifts t by whole months without the day-overflow behavior of
// time.Time.AddDate (which would turn Mar 31 - 1 month into Mar 3).
func addMonths(t time.Time, months int) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
