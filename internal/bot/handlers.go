package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
)

const profileNotConfiguredMsg = "Set up your profile with /start first."
const somethingWentWrongMsg = "❌ Something went wrong. Please try again."

// reply sends a plain text message and logs delivery failures.
func (b *Bot) reply(ctx context.Context, tg TelegramAPI, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, b.sender, update)
}

// handleStartCore greets new users and launches the onboarding
// questionnaire; configured users get their status readout instead.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
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

	if user.Configured() {
		text, err := b.buildStatusMessage(ctx, user)
		if err != nil {
			logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to build status")
			b.reply(ctx, tg, chatID, somethingWentWrongMsg)
			return
		}
		b.reply(ctx, tg, chatID, text)
		return
	}

	b.setStage(userID, stageIncome)
	b.reply(ctx, tg, chatID,
		"👋 Hi! I help you figure out how much you can spend before your next salary.\n"+
			"First, what is your monthly income?")
}

// handleIncomeAnswerCore consumes the income step of onboarding.
func (b *Bot) handleIncomeAnswerCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	incomeCents, err := ParseMoney(update.Message.Text)
	if err != nil {
		b.reply(ctx, tg, chatID, "Enter your income as a number, e.g. 85000")
		return
	}

	if err := b.userRepo.UpdateIncome(ctx, userID, incomeCents); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to save income")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	b.setStage(userID, stageSalary)
	b.reply(ctx, tg, chatID,
		"When do you get paid? Enter a day of month (1-31) or a date (YYYY-MM-DD / DD.MM.YYYY).")
}

// handleSalaryAnswerCore consumes the salary anchor step of onboarding.
func (b *Bot) handleSalaryAnswerCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	day, date, err := ParseSalaryInput(update.Message.Text)
	if err != nil {
		b.reply(ctx, tg, chatID, "Enter a day of month (1-31) or a date like 2026-09-25 / 25.09.2026.")
		return
	}

	if err := b.userRepo.UpdateSalaryAnchor(ctx, userID, day, date); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to save salary anchor")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	b.setStage(userID, stageNone)

	user, err := b.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load user")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	text, err := b.buildStatusMessage(ctx, user)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to build status")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	b.reply(ctx, tg, chatID, "All set! "+text)
}

// handleHelp handles the /help command.
func (b *Bot) handleHelp(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleHelpCore(ctx, b.sender, update)
}

// handleHelpCore sends the command summary.
func (b *Bot) handleHelpCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	text := fmt.Sprintf(`📚 Available commands

Budget:
• /start - set up income and pay day
• /status - days left, remaining balance, daily limit
• Send an expense like "350 food" or "+349.90 coffee flat white"

History:
• /expenses - expense history with delete buttons
• /analytics - top categories and the most expensive day

Premium (activate with /promo CODE):
• /goals - list savings goals
• /goals add <amount> <title> - add a goal
• Daily balance notification at %d:00 (%s)`,
		b.cfg.NotifyHour, b.cfg.Timezone)

	b.reply(ctx, tg, update.Message.Chat.ID, text)
}
