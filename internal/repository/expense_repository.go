package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// CategoryTotal is an aggregated spend figure for one category.
type CategoryTotal struct {
	Category   string
	TotalCents int64
}

// DayTotal is the aggregated spend for a single calendar day.
type DayTotal struct {
	Day        time.Time
	TotalCents int64
}

// Create adds a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (user_id, amount_cents, category, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, expense.UserID, expense.AmountCents, expense.Category, expense.Note,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// SumSince totals the user's expenses recorded at or after start. The
// result is zero when no expenses exist; this is the expense-sum input
// the budget engine consumes.
func (r *ExpenseRepository) SumSince(ctx context.Context, userID int64, start time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM expenses
		WHERE user_id = $1 AND created_at >= $2
	`, userID, start).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// CountSince counts the user's expenses recorded at or after start.
func (r *ExpenseRepository) CountSince(ctx context.Context, userID int64, start time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND created_at >= $2
	`, userID, start).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// ListPage returns one page of the user's expense history, newest first,
// along with the total number of expenses.
func (r *ExpenseRepository) ListPage(ctx context.Context, userID int64, page, pageSize int) ([]models.Expense, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount_cents, category, COALESCE(note, ''), created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.AmountCents, &exp.Category, &exp.Note, &exp.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, total, nil
}

// DeleteByIDAndUser removes an expense, but only when it belongs to the
// given user. Reports whether a row was deleted.
func (r *ExpenseRepository) DeleteByIDAndUser(ctx context.Context, id int, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CategoryTotalsSince returns the user's top spending categories within
// the current period, largest first.
func (r *ExpenseRepository) CategoryTotalsSince(ctx context.Context, userID int64, start time.Time, limit int) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, SUM(amount_cents)
		FROM expenses
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY category
		ORDER BY SUM(amount_cents) DESC
		LIMIT $3
	`, userID, start, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}
	return totals, nil
}

// TopSpendingDay finds the single most expensive day since start.
// Returns nil when the user has no expenses in the range.
func (r *ExpenseRepository) TopSpendingDay(ctx context.Context, userID int64, start time.Time) (*DayTotal, error) {
	var dt DayTotal
	err := r.db.QueryRow(ctx, `
		SELECT created_at::date, SUM(amount_cents)
		FROM expenses
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY created_at::date
		ORDER BY SUM(amount_cents) DESC
		LIMIT 1
	`, userID, start).Scan(&dt.Day, &dt.TotalCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query top spending day: %w", err)
	}
	return &dt, nil
}
