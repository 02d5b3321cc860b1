package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// expensesPageSize is how many expenses one history page shows.
const expensesPageSize = 5

// handleFreeTextExpenseCore records a free-text expense entry and replies
// with the updated status readout.
func (b *Bot) handleFreeTextExpenseCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
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
	if !user.IsPremium {
		count, err := b.expenseRepo.CountSince(ctx, userID, period.Start)
		if err != nil {
			logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to count expenses")
			b.reply(ctx, tg, chatID, somethingWentWrongMsg)
			return
		}
		if count >= models.FreeExpenseLimit {
			b.reply(ctx, tg, chatID, fmt.Sprintf(
				"You reached the limit of %d expenses until payday. Activate Premium with /promo for unlimited entries.",
				models.FreeExpenseLimit))
			return
		}
	}

	expense, err := ParseExpenseInput(update.Message.Text)
	if err != nil {
		b.reply(ctx, tg, chatID, "Send an amount and category, e.g. +350 food")
		return
	}
	expense.UserID = userID

	if err := b.expenseRepo.Create(ctx, expense); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to create expense")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	text, err := b.buildStatusMessage(ctx, user)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to build status")
		b.reply(ctx, tg, chatID, "Expense recorded.")
		return
	}
	b.reply(ctx, tg, chatID, "Expense recorded. "+text)
}

// handleExpenses handles the /expenses command.
func (b *Bot) handleExpenses(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleExpensesCore(ctx, b.sender, update)
}

// handleExpensesCore sends the first page of the expense history.
func (b *Bot) handleExpensesCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	text, keyboard, err := b.renderExpensesPage(ctx, userID, 0)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to render expenses")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send expenses page")
	}
}

// handlePageCallback handles the "page:N" pagination callbacks.
func (b *Bot) handlePageCallback(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handlePageCallbackCore(ctx, b.sender, update)
}

// handlePageCallbackCore re-renders the requested history page in place.
func (b *Bot) handlePageCallbackCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, "page:"))
	if err != nil || page < 0 {
		return
	}

	b.editExpensesPage(ctx, tg, update, page, "")
}

// handleDeleteCallback handles the "del:ID:PAGE" callbacks.
func (b *Bot) handleDeleteCallback(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleDeleteCallbackCore(ctx, b.sender, update)
}

// handleDeleteCallbackCore deletes the user's expense and re-renders the
// page the button lived on.
func (b *Bot) handleDeleteCallbackCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}
	userID := update.CallbackQuery.From.ID

	parts := strings.Split(update.CallbackQuery.Data, ":")
	if len(parts) != 3 {
		return
	}
	expenseID, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 0 {
		return
	}

	// Ownership is enforced in the query; a foreign or stale ID deletes
	// nothing and the page refresh is still correct.
	deleted, err := b.expenseRepo.DeleteByIDAndUser(ctx, expenseID, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to delete expense")
		return
	}

	answer := "Deleted"
	if !deleted {
		answer = "Already gone"
	}
	b.editExpensesPage(ctx, tg, update, page, answer)
}

// editExpensesPage refreshes the history message under a callback and
// answers the callback query.
func (b *Bot) editExpensesPage(ctx context.Context, tg TelegramAPI, update *tgmodels.Update, page int, answer string) {
	userID := update.CallbackQuery.From.ID
	msg := update.CallbackQuery.Message.Message

	text, keyboard, err := b.renderExpensesPage(ctx, userID, page)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to render expenses")
		return
	}

	_, err = tg.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to edit expenses page")
	}

	_, err = tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            answer,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to answer callback query")
	}
}

// renderExpensesPage builds the history text and inline keyboard for one
// page of the user's expenses.
func (b *Bot) renderExpensesPage(ctx context.Context, userID int64, page int) (string, *tgmodels.InlineKeyboardMarkup, error) {
	expenses, total, err := b.expenseRepo.ListPage(ctx, userID, page, expensesPageSize)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	if len(expenses) == 0 {
		return "No expenses yet.", &tgmodels.InlineKeyboardMarkup{InlineKeyboard: [][]tgmodels.InlineKeyboardButton{}}, nil
	}

	lines := []string{"🧾 Expense history:"}
	ids := make([]int, 0, len(expenses))
	for _, expense := range expenses {
		ids = append(ids, expense.ID)
		lines = append(lines, fmt.Sprintf(
			"#%d • %s • %s • %s",
			expense.ID,
			expense.CreatedAt.In(b.loc).Format("02.01"),
			finance.FormatMoney(expense.AmountCents, b.cfg.CurrencySymbol),
			expense.Category,
		))
	}

	hasNext := (page+1)*expensesPageSize < total
	return strings.Join(lines, "\n"), buildExpensesKeyboard(page, hasNext, ids), nil
}

// buildExpensesKeyboard renders one delete button per listed expense plus
// a navigation row.
func buildExpensesKeyboard(page int, hasNext bool, expenseIDs []int) *tgmodels.InlineKeyboardMarkup {
	var rows [][]tgmodels.InlineKeyboardButton
	for _, id := range expenseIDs {
		rows = append(rows, []tgmodels.InlineKeyboardButton{{
			Text:         fmt.Sprintf("Delete #%d", id),
			CallbackData: fmt.Sprintf("del:%d:%d", id, page),
		}})
	}

	var nav []tgmodels.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgmodels.InlineKeyboardButton{
			Text:         "⬅️ Back",
			CallbackData: fmt.Sprintf("page:%d", page-1),
		})
	}
	if hasNext {
		nav = append(nav, tgmodels.InlineKeyboardButton{
			Text:         "Next ➡️",
			CallbackData: fmt.Sprintf("page:%d", page+1),
		})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
}
