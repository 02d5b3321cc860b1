package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/budget-bot/internal/config"
	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
	"gitlab.com/yelinaung/budget-bot/internal/repository"
)

// testAdminID is the single admin configured in test bots.
const testAdminID int64 = 999

// testNow is the frozen clock for handler tests: 2026-09-01 noon UTC.
var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

// testConfig returns a minimal valid configuration for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		TelegramBotToken: "test-token",
		DatabaseURL:      "test-url",
		AdminIDs:         []int64{testAdminID},
		NotifyHour:       9,
		Timezone:         "UTC",
		CurrencySymbol:   "₽",
	}
}

// newTestBot creates a Bot wired to the given database handle with a
// frozen clock. It never talks to Telegram; tests pass a MockBot into the
// core handlers.
func newTestBot(db database.PGXDB) *Bot {
	cfg := testConfig()
	return &Bot{
		cfg:         cfg,
		loc:         time.UTC,
		now:         func() time.Time { return testNow },
		userRepo:    repository.NewUserRepository(db),
		expenseRepo: repository.NewExpenseRepository(db),
		goalRepo:    repository.NewGoalRepository(db),
		promoRepo:   repository.NewPromoRepository(db),
		limiter:     newRateLimiter(defaultRateLimitInterval),
		pending:     make(map[int64]onboardingStage),
	}
}

// seedUser registers a bare user record, as the session middleware would.
func seedUser(t *testing.T, b *Bot, id int64) {
	t.Helper()
	user := &models.User{ID: id, Username: "testuser", FirstName: "Test"}
	require.NoError(t, b.userRepo.GetOrCreate(context.Background(), user, b.today()))
}

// seedConfiguredUser registers a user with income and a recurring salary
// day, i.e. one who completed onboarding.
func seedConfiguredUser(t *testing.T, b *Bot, id int64, incomeCents int64, salaryDay int) {
	t.Helper()
	seedUser(t, b, id)
	ctx := context.Background()
	require.NoError(t, b.userRepo.UpdateIncome(ctx, id, incomeCents))
	require.NoError(t, b.userRepo.UpdateSalaryAnchor(ctx, id, &salaryDay, nil))
}
