package bot

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// Parsing errors surfaced to the user as reply text.
var (
	ErrInvalidAmount = errors.New("amount must be a positive number with at most two decimal places")
	ErrInvalidSalary = errors.New("expected a day of month (1-31) or a date like 2026-09-25 / 25.09.2026")
)

// maxAmountCents bounds parsed amounts so the cents conversion cannot
// overflow int64.
var maxAmountCents = decimal.New(1, 15)

// salaryDateLayouts are the accepted explicit pay date formats.
var salaryDateLayouts = []string{"2006-01-02", "02.01.2006"}

// ParseMoney converts a user-entered amount into integer cents. Decimal
// amounts are accepted with up to two fractional digits; anything finer
// would silently lose money, so it is rejected instead.
func ParseMoney(text string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Shift(2)
	if !cents.IsInteger() || !cents.IsPositive() || cents.Cmp(maxAmountCents) > 0 {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// ParseExpenseInput parses a free-text expense entry of the form
// "[+]amount [category] [note...]". The leading "+" is an accepted habit
// from manual ledgers and is ignored. A missing category falls back to
// models.DefaultCategory.
func ParseExpenseInput(text string) (*models.Expense, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "+"))

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return nil, ErrInvalidAmount
	}

	amountCents, err := ParseMoney(fields[0])
	if err != nil {
		return nil, err
	}

	category := models.DefaultCategory
	if len(fields) > 1 {
		category = truncateCategory(fields[1])
	}

	note := ""
	if len(fields) > 2 {
		note = strings.Join(fields[2:], " ")
	}

	return &models.Expense{
		AmountCents: amountCents,
		Category:    category,
		Note:        note,
	}, nil
}

// ParseSalaryInput parses the salary anchor answer: either a recurring day
// of month or an explicit date. Exactly one of the results is non-nil.
func ParseSalaryInput(text string) (day *int, date *time.Time, err error) {
	cleaned := strings.TrimSpace(text)

	for _, layout := range salaryDateLayouts {
		if parsed, perr := time.Parse(layout, cleaned); perr == nil {
			parsed = parsed.UTC()
			return nil, &parsed, nil
		}
	}

	d, aerr := strconv.Atoi(cleaned)
	if aerr != nil || d < 1 || d > 31 {
		return nil, nil, ErrInvalidSalary
	}
	return &d, nil, nil
}

// LooksLikeExpense reports whether a free-text message should be treated
// as an expense entry: an optional "+" followed by a digit.
func LooksLikeExpense(text string) bool {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "+")
	cleaned = strings.TrimSpace(cleaned)
	return cleaned != "" && cleaned[0] >= '0' && cleaned[0] <= '9'
}

// truncateCategory enforces the category length cap without splitting a
// multi-byte character.
func truncateCategory(category string) string {
	runes := []rune(category)
	if len(runes) > models.MaxCategoryLength {
		return string(runes[:models.MaxCategoryLength])
	}
	return category
}
