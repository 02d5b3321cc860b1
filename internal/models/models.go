// Package models defines the domain entities for the budget bot.
package models

import "time"

// DefaultCategory is assigned to expenses entered without a category.
const DefaultCategory = "other"

// MaxCategoryLength is the maximum allowed length for expense categories.
const MaxCategoryLength = 120

// FreeExpenseLimit caps how many expenses a non-premium user may record
// within a single salary period.
const FreeExpenseLimit = 30

// User represents a Telegram user and their budget profile. Money fields
// are integer minor currency units; SalaryDay and SalaryDate are the two
// mutually exclusive salary anchor fields.
type User struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	IncomeCents    int64
	SalaryDay      *int
	SalaryDate     *time.Time
	IsPremium      bool
	PremiumUntil   *time.Time
	LastNotifiedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Configured reports whether the user finished onboarding: income plus at
// least one salary anchor field.
func (u *User) Configured() bool {
	return u.IncomeCents > 0 && (u.SalaryDay != nil || u.SalaryDate != nil)
}

// Expense represents a single recorded expense in minor currency units.
type Expense struct {
	ID          int
	UserID      int64
	AmountCents int64
	Category    string
	Note        string
	CreatedAt   time.Time
}

// Goal represents a premium savings goal.
type Goal struct {
	ID           int
	UserID       int64
	Title        string
	TargetCents  int64
	CurrentCents int64
	CreatedAt    time.Time
}

// PromoCode represents a redeemable premium promo code.
type PromoCode struct {
	ID          int
	Code        string
	PremiumDays int
	MaxUses     int
	Uses        int
	CreatedAt   time.Time
}

// PromoActivation records that a user redeemed a promo code; at most one
// activation per user per code.
type PromoActivation struct {
	ID          int
	UserID      int64
	PromoID     int
	ActivatedAt time.Time
}
