package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// UserRepository handles user database operations.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, first_name, last_name, income_cents, salary_day, salary_date,
	is_premium, premium_until, last_notified_at, created_at, updated_at`

// GetOrCreate upserts the user's Telegram identity and loads the budget
// profile into user. An expired premium subscription lapses here, so
// every request observes the current premium state.
func (r *UserRepository) GetOrCreate(ctx context.Context, user *models.User, today time.Time) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			updated_at = NOW()
		RETURNING income_cents, salary_day, salary_date, is_premium, premium_until, last_notified_at, created_at, updated_at
	`, user.ID, user.Username, user.FirstName, user.LastName).Scan(
		&user.IncomeCents, &user.SalaryDay, &user.SalaryDate, &user.IsPremium,
		&user.PremiumUntil, &user.LastNotifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if user.IsPremium && user.PremiumUntil != nil && user.PremiumUntil.Before(today) {
		if _, err := r.db.Exec(ctx,
			`UPDATE users SET is_premium = FALSE, updated_at = NOW() WHERE id = $1`,
			user.ID,
		); err != nil {
			return fmt.Errorf("failed to lapse expired premium: %w", err)
		}
		user.IsPremium = false
	}

	return nil
}

// GetByID retrieves a user by their Telegram ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.IncomeCents, &user.SalaryDay, &user.SalaryDate,
		&user.IsPremium, &user.PremiumUntil, &user.LastNotifiedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateIncome sets the user's monthly income in minor currency units.
func (r *UserRepository) UpdateIncome(ctx context.Context, userID, incomeCents int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET income_cents = $2, updated_at = NOW() WHERE id = $1`,
		userID, incomeCents,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}

// UpdateSalaryAnchor stores the salary anchor. Exactly one of day and
// date should be non-nil; the other column is cleared so the anchor
// variants stay mutually exclusive.
func (r *UserRepository) UpdateSalaryAnchor(ctx context.Context, userID int64, day *int, date *time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET salary_day = $2, salary_date = $3, updated_at = NOW() WHERE id = $1`,
		userID, day, date,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary anchor: %w", err)
	}
	return nil
}

// GrantPremium marks the user premium through the given date.
func (r *UserRepository) GrantPremium(ctx context.Context, userID int64, until time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET is_premium = TRUE, premium_until = $2, updated_at = NOW() WHERE id = $1`,
		userID, until,
	)
	if err != nil {
		return fmt.Errorf("failed to grant premium: %w", err)
	}
	return nil
}

// ListPremium returns all currently premium users.
func (r *UserRepository) ListPremium(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_premium ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query premium users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.FirstName, &user.LastName,
			&user.IncomeCents, &user.SalaryDay, &user.SalaryDate,
			&user.IsPremium, &user.PremiumUntil, &user.LastNotifiedAt,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan premium user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate premium users: %w", err)
	}
	return users, nil
}

// MarkNotified records that the user's daily notification was delivered
// on the given day.
func (r *UserRepository) MarkNotified(ctx context.Context, userID int64, day time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_notified_at = $2, updated_at = NOW() WHERE id = $1`,
		userID, day,
	)
	if err != nil {
		return fmt.Errorf("failed to mark user notified: %w", err)
	}
	return nil
}
