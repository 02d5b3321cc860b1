package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// handleGoals handles the /goals command.
func (b *Bot) handleGoals(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleGoalsCore(ctx, b.sender, update)
}

// handleGoalsCore lists savings goals or adds one via
// "/goals add <amount> <title>". Goals are a premium feature.
func (b *Bot) handleGoalsCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, err := b.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load user")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	if !user.IsPremium {
		b.reply(ctx, tg, chatID, "Goals are a Premium feature. Activate with /promo CODE.")
		return
	}

	parts := strings.Fields(update.Message.Text)
	if len(parts) >= 4 && parts[1] == "add" {
		b.addGoalCore(ctx, tg, chatID, userID, parts[2], strings.Join(parts[3:], " "))
		return
	}

	goals, err := b.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to list goals")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	if len(goals) == 0 {
		b.reply(ctx, tg, chatID, "No goals yet. Add one: /goals add 50000 Vacation")
		return
	}

	lines := []string{"🎯 Your goals:"}
	for _, goal := range goals {
		lines = append(lines, fmt.Sprintf("• %s: %s / %s",
			goal.Title,
			finance.FormatMoney(goal.CurrentCents, b.cfg.CurrencySymbol),
			finance.FormatMoney(goal.TargetCents, b.cfg.CurrencySymbol)))
	}
	b.reply(ctx, tg, chatID, strings.Join(lines, "\n"))
}

// addGoalCore validates and stores a new goal.
func (b *Bot) addGoalCore(ctx context.Context, tg TelegramAPI, chatID, userID int64, amountText, title string) {
	targetCents, err := ParseMoney(amountText)
	if err != nil {
		b.reply(ctx, tg, chatID, "Enter the goal amount as a number, e.g. /goals add 50000 Vacation")
		return
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		TargetCents: targetCents,
	}
	if err := b.goalRepo.Create(ctx, goal); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to create goal")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	b.reply(ctx, tg, chatID, "Goal added!")
}
