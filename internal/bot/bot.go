// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"gitlab.com/yelinaung/budget-bot/internal/config"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/models"
	"gitlab.com/yelinaung/budget-bot/internal/repository"
)

// onboardingStage tracks where a user is in the /start questionnaire.
type onboardingStage int

const (
	stageNone onboardingStage = iota
	stageIncome
	stageSalary
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot    *bot.Bot
	cfg    *config.Config
	loc    *time.Location
	sender TelegramAPI
	now    func() time.Time

	userRepo    *repository.UserRepository
	expenseRepo *repository.ExpenseRepository
	goalRepo    *repository.GoalRepository
	promoRepo   *repository.PromoRepository

	limiter *rateLimiter

	pendingMu sync.Mutex
	pending   map[int64]onboardingStage
}

// New creates a new Bot instance.
func New(cfg *config.Config, pool *pgxpool.Pool) (*Bot, error) {
	b := &Bot{
		cfg:         cfg,
		loc:         cfg.Location(),
		now:         time.Now,
		userRepo:    repository.NewUserRepository(pool),
		expenseRepo: repository.NewExpenseRepository(pool),
		goalRepo:    repository.NewGoalRepository(pool),
		promoRepo:   repository.NewPromoRepository(pool),
		limiter:     newRateLimiter(defaultRateLimitInterval),
		pending:     make(map[int64]onboardingStage),
	}

	opts := []bot.Option{
		bot.WithMiddlewares(b.rateLimitMiddleware, b.sessionMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.sender = newRetryingSender(telegramBot, defaultSendRetries, nil)
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.handleHelp)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, b.handleStatus)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/expenses", bot.MatchTypePrefix, b.handleExpenses)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analytics", bot.MatchTypePrefix, b.handleAnalytics)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/goals", bot.MatchTypePrefix, b.handleGoals)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/promo", bot.MatchTypePrefix, b.handlePromo)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_add_promo", bot.MatchTypePrefix, b.handleAdminAddPromo)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_list_promos", bot.MatchTypePrefix, b.handleAdminListPromos)
	b.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "page:", bot.MatchTypePrefix, b.handlePageCallback)
	b.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "del:", bot.MatchTypePrefix, b.handleDeleteCallback)
}

// today returns the current date in the configured timezone. All period
// math downstream normalizes it to a pure date.
func (b *Bot) today() time.Time {
	return b.now().In(b.loc)
}

// rateLimitMiddleware drops updates arriving faster than the per-user
// minimum interval.
func (b *Bot) rateLimitMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		if userID != 0 && !b.limiter.Allow(userID, b.now()) {
			logger.Log.Debug().
				Str("user_hash", logger.HashUserID(userID)).
				Msg("Dropped update due to rate limit")
			return
		}
		next(ctx, tgBot, update)
	}
}

// sessionMiddleware upserts the user record (lapsing expired premium) and
// logs the action before the handler runs.
func (b *Bot) sessionMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		if userID == 0 {
			return
		}

		logUserAction(userID, update)

		if err := b.ensureUserRegistered(ctx, update); err != nil {
			logger.Log.Error().
				Str("user_hash", logger.HashUserID(userID)).
				Err(err).
				Msg("Failed to register user")
		}

		next(ctx, tgBot, update)
	}
}

// logUserAction logs the user's input with hashed identity.
func logUserAction(userID int64, update *tgmodels.Update) {
	switch {
	case update.Message != nil:
		logger.Log.Info().
			Str("user_hash", logger.HashUserID(userID)).
			Str("text", logger.SanitizeText(update.Message.Text)).
			Msg("User input")

	case update.CallbackQuery != nil:
		logger.Log.Info().
			Str("user_hash", logger.HashUserID(userID)).
			Str("data", update.CallbackQuery.Data).
			Msg("Callback query")
	}
}

// ensureUserRegistered creates or updates the user record.
func (b *Bot) ensureUserRegistered(ctx context.Context, update *tgmodels.Update) error {
	var user *models.User

	if update.Message != nil && update.Message.From != nil {
		from := update.Message.From
		user = &models.User{
			ID:        from.ID,
			Username:  from.Username,
			FirstName: from.FirstName,
			LastName:  from.LastName,
		}
	} else if update.CallbackQuery != nil {
		from := update.CallbackQuery.From
		user = &models.User{
			ID:        from.ID,
			Username:  from.Username,
			FirstName: from.FirstName,
			LastName:  from.LastName,
		}
	}

	if user == nil {
		return nil
	}

	if err := b.userRepo.GetOrCreate(ctx, user, b.today()); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// extractUserID gets the user ID from the supported update types.
func extractUserID(update *tgmodels.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

// stage returns the user's current onboarding stage.
func (b *Bot) stage(userID int64) onboardingStage {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return b.pending[userID]
}

// setStage moves the user to the given onboarding stage; stageNone clears
// the pending entry.
func (b *Bot) setStage(userID int64, stage onboardingStage) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	if stage == stageNone {
		delete(b.pending, userID)
		return
	}
	b.pending[userID] = stage
}

// defaultHandler routes free-form text: onboarding answers while the
// questionnaire is active, expense entries otherwise.
func (b *Bot) defaultHandler(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.defaultHandlerCore(ctx, b.sender, update)
}

// defaultHandlerCore is the testable implementation of defaultHandler.
func (b *Bot) defaultHandlerCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	userID := update.Message.From.ID

	switch b.stage(userID) {
	case stageIncome:
		b.handleIncomeAnswerCore(ctx, tg, update)
		return
	case stageSalary:
		b.handleSalaryAnswerCore(ctx, tg, update)
		return
	}

	if LooksLikeExpense(update.Message.Text) {
		b.handleFreeTextExpenseCore(ctx, tg, update)
		return
	}

	b.reply(ctx, tg, update.Message.Chat.ID,
		"I didn't understand that. Send an expense like \"350 food\" or use /help.")
}
