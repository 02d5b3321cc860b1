package bot

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
)

// handlePromo handles the /promo command.
func (b *Bot) handlePromo(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handlePromoCore(ctx, b.sender, update)
}

// handlePromoCore redeems a promo code: the code must exist and have uses
// remaining, each user may redeem a given code once, and redemption
// extends the premium expiry from max(today, current expiry).
func (b *Bot) handlePromoCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.reply(ctx, tg, chatID, "Enter a promo code: /promo CODE")
		return
	}
	code := strings.ToUpper(parts[1])

	promo, err := b.promoRepo.GetByCode(ctx, code)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to look up promo code")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	if promo == nil || promo.Uses >= promo.MaxUses {
		b.reply(ctx, tg, chatID, "This promo code is not valid.")
		return
	}

	activated, err := b.promoRepo.HasActivation(ctx, userID, promo.ID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to check promo activation")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	if activated {
		b.reply(ctx, tg, chatID, "You already redeemed this promo code.")
		return
	}

	user, err := b.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to load user")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	if err := b.promoRepo.Activate(ctx, userID, promo.ID); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to activate promo code")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	// Stacking: a redemption while premium is active extends the current
	// expiry, a redemption after lapse starts from today.
	until := b.today()
	if user.PremiumUntil != nil && user.PremiumUntil.After(until) {
		until = *user.PremiumUntil
	}
	until = until.AddDate(0, 0, promo.PremiumDays)

	if err := b.userRepo.GrantPremium(ctx, userID, until); err != nil {
		logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(userID)).Msg("Failed to grant premium")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Str("code", code).
		Msg("Promo code redeemed")

	b.reply(ctx, tg, chatID,
		"Premium activated!\nYou now have goals, daily notifications, and unlimited expenses.")
}
