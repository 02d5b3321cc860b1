package finance

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

// drawDate generates an arbitrary valid calendar date, clamping the drawn
// day to the month's length so short months stay reachable.
func drawDate(t *rapid.T, label string) time.Time {
	year := rapid.IntRange(1990, 2100).Draw(t, label+"_year")
	month := time.Month(rapid.IntRange(1, 12).Draw(t, label+"_month"))
	day := rapid.IntRange(1, 31).Draw(t, label+"_day")
	return monthDay(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), day)
}

func TestComputePeriodProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		today := drawDate(t, "today")
		day := rapid.IntRange(1, 31).Draw(t, "anchor_day")

		p := ComputePeriod(today, DayOfMonth(day))

		if !p.Start.Before(p.NextSalary) {
			t.Fatalf("start %v not before next salary %v", p.Start, p.NextSalary)
		}
		if today.Before(p.Start) || p.NextSalary.Before(today) {
			t.Fatalf("today %v outside period [%v, %v]", today, p.Start, p.NextSalary)
		}

		wantDay := day
		if last := daysInMonth(p.NextSalary.Year(), p.NextSalary.Month()); wantDay > last {
			wantDay = last
		}
		if p.NextSalary.Day() != wantDay {
			t.Fatalf("next salary day = %d, want %d", p.NextSalary.Day(), wantDay)
		}

		if p.DaysLeft(today) < 0 {
			t.Fatalf("negative days left: %d", p.DaysLeft(today))
		}

		// Pure function: identical inputs yield identical output.
		again := ComputePeriod(today, DayOfMonth(day))
		if !again.Start.Equal(p.Start) || !again.NextSalary.Equal(p.NextSalary) {
			t.Fatalf("compute period is not deterministic: %v vs %v", p, again)
		}
	})
}

func TestComputePeriodExplicitDateProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		today := drawDate(t, "today")
		payDate := drawDate(t, "pay_date")

		p := ComputePeriod(today, ExplicitDate(payDate))

		if !p.Start.Before(p.NextSalary) {
			t.Fatalf("start %v not before next salary %v", p.Start, p.NextSalary)
		}

		if !payDate.Before(today) {
			// Future (or today's) explicit date is authoritative.
			if !p.NextSalary.Equal(payDate) {
				t.Fatalf("next salary %v, want explicit date %v", p.NextSalary, payDate)
			}
			// Start is one calendar month back, clamped; never more than
			// 31 days before the payday.
			if days := daysBetween(p.Start, p.NextSalary); days < 28 || days > 31 {
				t.Fatalf("period length %d days for explicit date %v", days, payDate)
			}
		} else if p.NextSalary.Before(today) {
			t.Fatalf("next salary %v already passed for today %v", p.NextSalary, today)
		}
	})
}

func TestDailyLimitProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		income := rapid.Int64Range(0, 1_000_000_000_00).Draw(t, "income")
		expenses := rapid.Int64Range(0, 1_000_000_000_00).Draw(t, "expenses")
		daysLeft := rapid.IntRange(0, 31).Draw(t, "days_left")

		p := Period{
			Start:      date(2024, time.January, 1),
			NextSalary: date(2024, time.January, 1).AddDate(0, 0, daysLeft),
		}
		snap := ComputeSnapshot(income, expenses, p, date(2024, time.January, 1))

		if snap.BalanceCents < 0 {
			t.Fatalf("negative balance: %d", snap.BalanceCents)
		}
		if snap.DailyLimitCents > snap.BalanceCents {
			t.Fatalf("daily limit %d exceeds balance %d", snap.DailyLimitCents, snap.BalanceCents)
		}
		if snap.DaysLeft >= 1 && snap.DailyLimitCents*int64(snap.DaysLeft) > snap.BalanceCents {
			t.Fatalf("limit %d over %d days exceeds balance %d",
				snap.DailyLimitCents, snap.DaysLeft, snap.BalanceCents)
		}
	})
}
