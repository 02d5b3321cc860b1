package finance

import "time"

// Snapshot is the ephemeral balance/limit readout for a user. It is
// recomputed on every request from the latest ledger state and never
// persisted or cached.
type Snapshot struct {
	BalanceCents    int64
	DailyLimitCents int64
	DaysLeft        int
}

// DailyLimit divides the remaining balance evenly across the remaining
// days, flooring to whole cents. A non-positive day count means payday has
// arrived: the whole balance may be spent today.
func DailyLimit(balanceCents int64, daysLeft int) int64 {
	if daysLeft <= 0 {
		return balanceCents
	}
	limit := balanceCents / int64(daysLeft)
	if limit < 0 {
		return 0
	}
	return limit
}

// ComputeSnapshot derives today's budget snapshot from the user's monthly
// income, the expense total accumulated since the period start, and the
// active salary period. Overspending clamps the balance at zero rather
// than surfacing an error; blocking further entries is caller policy.
func ComputeSnapshot(incomeCents, expenseSumCents int64, period Period, today time.Time) Snapshot {
	balance := incomeCents - expenseSumCents
	if balance < 0 {
		balance = 0
	}

	daysLeft := period.DaysLeft(today)
	divisor := daysLeft
	if divisor < 1 {
		// Treat payday itself as one remaining day of budget.
		divisor = 1
	}

	return Snapshot{
		BalanceCents:    balance,
		DailyLimitCents: DailyLimit(balance, divisor),
		DaysLeft:        daysLeft,
	}
}
