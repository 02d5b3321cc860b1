package bot

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"gitlab.com/yelinaung/budget-bot/internal/config"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
	"gitlab.com/yelinaung/budget-bot/internal/repository"
)

// Notifier sends premium users their daily budget readout at the
// configured local hour.
type Notifier struct {
	tg          TelegramAPI
	cfg         *config.Config
	loc         *time.Location
	userRepo    *repository.UserRepository
	expenseRepo *repository.ExpenseRepository
	now         func() time.Time

	sent    metric.Int64Counter
	skipped metric.Int64Counter
	failed  metric.Int64Counter
}

// NewNotifier builds the daily notification scheduler on top of the bot's
// repositories and retrying sender.
func (b *Bot) NewNotifier() (*Notifier, error) {
	return newNotifier(b.sender, b.cfg, b.userRepo, b.expenseRepo)
}

func newNotifier(
	tg TelegramAPI,
	cfg *config.Config,
	userRepo *repository.UserRepository,
	expenseRepo *repository.ExpenseRepository,
) (*Notifier, error) {
	meter := otel.Meter("budget-bot/notifier")

	sent, err := meter.Int64Counter("notifications.sent")
	if err != nil {
		return nil, fmt.Errorf("failed to create sent counter: %w", err)
	}
	skipped, err := meter.Int64Counter("notifications.skipped")
	if err != nil {
		return nil, fmt.Errorf("failed to create skipped counter: %w", err)
	}
	failed, err := meter.Int64Counter("notifications.failed")
	if err != nil {
		return nil, fmt.Errorf("failed to create failed counter: %w", err)
	}

	return &Notifier{
		tg:          tg,
		cfg:         cfg,
		loc:         cfg.Location(),
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
		sent:        sent,
		skipped:     skipped,
		failed:      failed,
	}, nil
}

// Run sleeps until the next configured local trigger time, fans out the
// notifications, and repeats. Cancelling the context interrupts the sleep
// promptly and stops the loop.
func (n *Notifier) Run(ctx context.Context) error {
	logger.Log.Info().
		Int("hour", n.cfg.NotifyHour).
		Str("timezone", n.cfg.Timezone).
		Msg("Notification loop started")

	for {
		now := n.now().In(n.loc)
		next := nextTriggerAfter(now, n.cfg.NotifyHour)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Log.Info().Msg("Notification loop stopped")
			return nil
		case <-timer.C:
			n.notifyAll(ctx)
		}
	}
}

// nextTriggerAfter computes the next instant at the configured hour
// strictly after now, in now's location.
func nextTriggerAfter(now time.Time, hour int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// notifyAll sends the daily readout to every premium user who has not been
// notified today. One user's failure never blocks the rest.
func (n *Notifier) notifyAll(ctx context.Context) {
	today := n.now().In(n.loc)
	todayStr := today.Format("2006-01-02")

	users, err := n.userRepo.ListPremium(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list premium users")
		return
	}

	for _, user := range users {
		if user.LastNotifiedAt != nil && user.LastNotifiedAt.Format("2006-01-02") == todayStr {
			n.skipped.Add(ctx, 1)
			continue
		}
		if !user.Configured() {
			n.skipped.Add(ctx, 1)
			continue
		}

		anchor, _ := finance.AnchorFromProfile(user.SalaryDay, user.SalaryDate)
		period := finance.ComputePeriod(today, anchor)
		sum, err := n.expenseRepo.SumSince(ctx, user.ID, period.Start)
		if err != nil {
			logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(user.ID)).Msg("Failed to sum expenses")
			n.failed.Add(ctx, 1)
			continue
		}
		snapshot := finance.ComputeSnapshot(user.IncomeCents, sum, period, today)

		_, err = n.tg.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: user.ID,
			Text:   notificationText(snapshot, n.cfg.CurrencySymbol),
		})
		if err != nil {
			logger.Log.Warn().Err(err).Str("user_hash", logger.HashUserID(user.ID)).Msg("Failed to send notification")
			n.failed.Add(ctx, 1)
			continue
		}

		if err := n.userRepo.MarkNotified(ctx, user.ID, today); err != nil {
			logger.Log.Error().Err(err).Str("user_hash", logger.HashUserID(user.ID)).Msg("Failed to mark user notified")
		}

		n.sent.Add(ctx, 1)
		logger.Log.Debug().Str("user_hash", logger.HashUserID(user.ID)).Msg("Sent daily notification")
	}
}

// notificationText formats the daily premium notification.
func notificationText(s finance.Snapshot, symbol string) string {
	return fmt.Sprintf("Daily limit: %s. %s remaining until payday.",
		finance.FormatMoney(s.DailyLimitCents, symbol),
		finance.FormatMoney(s.BalanceCents, symbol))
}
