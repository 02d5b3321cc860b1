package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// handleStatus handles the /status command.
func (b *Bot) handleStatus(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleStatusCore(ctx, b.sender, update)
}

// handleStatusCore sends the salary period readout.
func (b *Bot) handleStatusCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
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

	if !user.Configured() {
		b.reply(ctx, tg, chatID, profileNotConfiguredMsg)
		return
	}

	text, err := b.buildStatusMessage(ctx, user)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to build status")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	b.reply(ctx, tg, chatID, text)
}

// periodFor computes the active salary period for a configured user.
func (b *Bot) periodFor(user *models.User) finance.Period {
	anchor, _ := finance.AnchorFromProfile(user.SalaryDay, user.SalaryDate)
	return finance.ComputePeriod(b.today(), anchor)
}

// snapshotFor recomputes the user's budget snapshot from the ledger.
func (b *Bot) snapshotFor(ctx context.Context, user *models.User) (finance.Snapshot, error) {
	period := b.periodFor(user)
	sum, err := b.expenseRepo.SumSince(ctx, user.ID, period.Start)
	if err != nil {
		return finance.Snapshot{}, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return finance.ComputeSnapshot(user.IncomeCents, sum, period, b.today()), nil
}

// buildStatusMessage renders the status readout for a configured user.
func (b *Bot) buildStatusMessage(ctx context.Context, user *models.User) (string, error) {
	snapshot, err := b.snapshotFor(ctx, user)
	if err != nil {
		return "", err
	}
	return statusText(snapshot, b.cfg.CurrencySymbol), nil
}

// statusText formats a budget snapshot. Payday itself is shown as one
// remaining day, matching the spend-it-all daily limit.
func statusText(s finance.Snapshot, symbol string) string {
	days := s.DaysLeft
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf(
		"📊 Salary period status:\n"+
			"• Days until payday: %d\n"+
			"• Remaining: %s\n"+
			"• Daily limit: %s",
		days,
		finance.FormatMoney(s.BalanceCents, symbol),
		finance.FormatMoney(s.DailyLimitCents, symbol),
	)
}
