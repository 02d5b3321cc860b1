package bot

import (
	"context"
	"time"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/budget-bot/internal/logger"
)

// defaultSendRetries is how many times a failed Telegram call is retried
// before the error is surfaced to the caller.
const defaultSendRetries = 2

// retryingSender decorates a TelegramAPI with bounded retries and
// incremental backoff. Transient Telegram transport errors dominate in
// practice, so every attempt after the first waits a bit longer.
type retryingSender struct {
	tg      TelegramAPI
	retries int
	sleep   func(time.Duration)
}

// Compile-time check that the decorator still satisfies the interface.
var _ TelegramAPI = (*retryingSender)(nil)

func newRetryingSender(tg TelegramAPI, retries int, sleep func(time.Duration)) *retryingSender {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &retryingSender{tg: tg, retries: retries, sleep: sleep}
}

// withRetries runs call until it succeeds or the retry budget is spent.
func withRetries[T any](ctx context.Context, s *retryingSender, call func() (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; ; attempt++ {
		result, err = call()
		if err == nil || attempt >= s.retries {
			return result, err
		}
		if ctx.Err() != nil {
			return result, err
		}
		backoff := time.Duration(1+attempt) * time.Second
		logger.Log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("Telegram call failed, retrying")
		s.sleep(backoff)
	}
}

func (s *retryingSender) SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*tgmodels.Message, error) {
	return withRetries(ctx, s, func() (*tgmodels.Message, error) {
		return s.tg.SendMessage(ctx, params)
	})
}

func (s *retryingSender) EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*tgmodels.Message, error) {
	return withRetries(ctx, s, func() (*tgmodels.Message, error) {
		return s.tg.EditMessageText(ctx, params)
	})
}

func (s *retryingSender) AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error) {
	return withRetries(ctx, s, func() (bool, error) {
		return s.tg.AnswerCallbackQuery(ctx, params)
	})
}

func (s *retryingSender) SendDocument(ctx context.Context, params *tgbot.SendDocumentParams) (*tgmodels.Message, error) {
	return withRetries(ctx, s, func() (*tgmodels.Message, error) {
		return s.tg.SendDocument(ctx, params)
	})
}
