package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
)

// topCategoriesLimit caps the category breakdown in /analytics.
const topCategoriesLimit = 5

// handleAnalytics handles the /analytics command.
func (b *Bot) handleAnalytics(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleAnalyticsCore(ctx, b.sender, update)
}

// handleAnalyticsCore sends the spending breakdown for the current salary
// period: top categories, the most expensive day, and a pie chart.
func (b *Bot) handleAnalyticsCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
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

	period := b.periodFor(user)

	totals, err := b.expenseRepo.CategoryTotalsSince(ctx, userID, period.Start, topCategoriesLimit)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load category totals")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	topDay, err := b.expenseRepo.TopSpendingDay(ctx, userID, period.Start)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load top spending day")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	lines := []string{"📈 Spending analytics:"}
	if len(totals) > 0 {
		lines = append(lines, fmt.Sprintf("Top %d categories:", topCategoriesLimit))
		for _, total := range totals {
			lines = append(lines, fmt.Sprintf("• %s: %s",
				total.Category, finance.FormatMoney(total.TotalCents, b.cfg.CurrencySymbol)))
		}
	} else {
		lines = append(lines, "No expenses to analyze yet.")
	}
	if topDay != nil {
		lines = append(lines, fmt.Sprintf("Most expensive day: %s (%s)",
			topDay.Day.Format("02.01"),
			finance.FormatMoney(topDay.TotalCents, b.cfg.CurrencySymbol)))
	}

	b.reply(ctx, tg, chatID, strings.Join(lines, "\n"))

	if len(totals) == 0 {
		return
	}

	chart, err := GenerateSpendingChart(totals, periodLabel(period))
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to generate chart")
		return
	}

	_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &tgmodels.InputFileUpload{
			Filename: chartFilename(b.today()),
			Data:     bytes.NewReader(chart),
		},
		Caption: "Spending by category",
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send chart")
	}
}

// periodLabel renders the salary period bounds for the chart title.
func periodLabel(period finance.Period) string {
	return fmt.Sprintf("%s - %s",
		period.Start.Format("02.01"),
		period.NextSalary.Format("02.01"))
}
