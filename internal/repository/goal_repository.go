package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// GoalRepository handles savings-goal database operations.
type GoalRepository struct {
	db database.PGXDB
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db database.PGXDB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create adds a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO goals (user_id, title, target_cents, current_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, goal.UserID, goal.Title, goal.TargetCents, goal.CurrentCents,
	).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ListByUser returns the user's goals, newest first.
func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, target_cents, current_cents, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Title, &goal.TargetCents, &goal.CurrentCents, &goal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}
