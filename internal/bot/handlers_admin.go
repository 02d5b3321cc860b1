package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

// Admin commands are silently ignored for everyone outside the configured
// admin ID list so their existence is not advertised.

// handleAdminAddPromo handles the /admin_add_promo command.
func (b *Bot) handleAdminAddPromo(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleAdminAddPromoCore(ctx, b.sender, update)
}

// handleAdminAddPromoCore creates a promo code:
// /admin_add_promo CODE DAYS MAX_USES.
func (b *Bot) handleAdminAddPromoCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !b.cfg.IsAdmin(userID) {
		return
	}

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 4 {
		b.reply(ctx, tg, chatID, "Usage: /admin_add_promo CODE DAYS MAX_USES")
		return
	}

	code := strings.ToUpper(parts[1])
	days, dayErr := strconv.Atoi(parts[2])
	maxUses, usesErr := strconv.Atoi(parts[3])
	if dayErr != nil || usesErr != nil || days <= 0 || maxUses <= 0 {
		b.reply(ctx, tg, chatID, "DAYS and MAX_USES must be positive numbers.")
		return
	}

	existing, err := b.promoRepo.GetByCode(ctx, code)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to look up promo code")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}
	if existing != nil {
		b.reply(ctx, tg, chatID, "This promo code already exists.")
		return
	}

	promo := &models.PromoCode{Code: code, PremiumDays: days, MaxUses: maxUses}
	if err := b.promoRepo.Create(ctx, promo); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to create promo code")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Str("code", code).
		Int("days", days).
		Int("max_uses", maxUses).
		Msg("Promo code created")

	b.reply(ctx, tg, chatID, "Promo code created.")
}

// handleAdminListPromos handles the /admin_list_promos command.
func (b *Bot) handleAdminListPromos(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	b.handleAdminListPromosCore(ctx, b.sender, update)
}

// handleAdminListPromosCore lists all promo codes with their usage.
func (b *Bot) handleAdminListPromosCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !b.cfg.IsAdmin(userID) {
		return
	}

	promos, err := b.promoRepo.List(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list promo codes")
		b.reply(ctx, tg, chatID, somethingWentWrongMsg)
		return
	}

	if len(promos) == 0 {
		b.reply(ctx, tg, chatID, "No promo codes.")
		return
	}

	lines := []string{"Promo codes:"}
	for _, promo := range promos {
		lines = append(lines, fmt.Sprintf("%s • %d/%d • %d days",
			promo.Code, promo.Uses, promo.MaxUses, promo.PremiumDays))
	}
	b.reply(ctx, tg, chatID, strings.Join(lines, "\n"))
}
