package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// PromoRepository handles promo-code and activation database operations.
type PromoRepository struct {
	db database.PGXDB
}

// NewPromoRepository creates a new PromoRepository.
func NewPromoRepository(db database.PGXDB) *PromoRepository {
	return &PromoRepository{db: db}
}

// Create adds a new promo code.
func (r *PromoRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO promo_codes (code, premium_days, max_uses)
		VALUES ($1, $2, $3)
		RETURNING id, uses, created_at
	`, promo.Code, promo.PremiumDays, promo.MaxUses,
	).Scan(&promo.ID, &promo.Uses, &promo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// GetByCode looks up a promo code. Returns (nil, nil) when the code does
// not exist, so callers can distinguish "invalid code" from a failure.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.QueryRow(ctx, `
		SELECT id, code, premium_days, max_uses, uses, created_at
		FROM promo_codes WHERE code = $1
	`, code).Scan(
		&promo.ID, &promo.Code, &promo.PremiumDays, &promo.MaxUses, &promo.Uses, &promo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &promo, nil
}

// List returns all promo codes, newest first.
func (r *PromoRepository) List(ctx context.Context) ([]models.PromoCode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, premium_days, max_uses, uses, created_at
		FROM promo_codes
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	var promos []models.PromoCode
	for rows.Next() {
		var promo models.PromoCode
		if err := rows.Scan(
			&promo.ID, &promo.Code, &promo.PremiumDays, &promo.MaxUses, &promo.Uses, &promo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate promo codes: %w", err)
	}
	return promos, nil
}

// HasActivation reports whether the user already redeemed the promo code.
func (r *PromoRepository) HasActivation(ctx context.Context, userID int64, promoID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM promo_activations WHERE user_id = $1 AND promo_id = $2)
	`, userID, promoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check promo activation: %w", err)
	}
	return exists, nil
}

// Activate records the user's redemption and bumps the code's use
// counter. The unique (user_id, promo_id) constraint backs up the
// HasActivation pre-check against concurrent redemption.
func (r *PromoRepository) Activate(ctx context.Context, userID int64, promoID int) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO promo_activations (user_id, promo_id) VALUES ($1, $2)
	`, userID, promoID); err != nil {
		return fmt.Errorf("failed to record promo activation: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		UPDATE promo_codes SET uses = uses + 1 WHERE id = $1
	`, promoID); err != nil {
		return fmt.Errorf("failed to increment promo uses: %w", err)
	}
	return nil
}
