package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/budget-bot/internal/bot/mocks"
)

func TestRetryingSenderRecoversAfterTransientFailures(t *testing.T) {
	t.Parallel()

	mock := mocks.NewMockBot()
	mock.SendMessageError = errors.New("telegram: network error")
	mock.SendMessageFailures = 2

	var slept []time.Duration
	sender := newRetryingSender(mock, 2, func(d time.Duration) { slept = append(slept, d) })

	msg, err := sender.SendMessage(context.Background(), &tgbot.SendMessageParams{
		ChatID: int64(1),
		Text:   "hello",
	})
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.Equal(t, 3, mock.SendAttempts())
	// Incremental backoff: each retry waits one second longer.
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
	require.Len(t, mock.SentMessages, 1)
}

func TestRetryingSenderGivesUpAfterRetryBudget(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("telegram: network error")
	mock := mocks.NewMockBot()
	mock.SendMessageError = sendErr

	var slept []time.Duration
	sender := newRetryingSender(mock, 1, func(d time.Duration) { slept = append(slept, d) })

	_, err := sender.SendMessage(context.Background(), &tgbot.SendMessageParams{
		ChatID: int64(1),
		Text:   "hello",
	})
	require.ErrorIs(t, err, sendErr)
	require.Equal(t, 2, mock.SendAttempts())
	require.Equal(t, []time.Duration{time.Second}, slept)
}

func TestRetryingSenderNoRetryOnSuccess(t *testing.T) {
	t.Parallel()

	mock := mocks.NewMockBot()
	sender := newRetryingSender(mock, 2, func(time.Duration) {
		t.Fatal("sleep must not be called on success")
	})

	_, err := sender.SendMessage(context.Background(), &tgbot.SendMessageParams{
		ChatID: int64(1),
		Text:   "hello",
	})
	require.NoError(t, err)
	require.Equal(t, 1, mock.SendAttempts())
}

func TestRetryingSenderStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	mock := mocks.NewMockBot()
	mock.SendMessageError = errors.New("telegram: network error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := newRetryingSender(mock, 5, func(time.Duration) {
		t.Fatal("must not sleep after cancellation")
	})

	_, err := sender.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: int64(1), Text: "hello"})
	require.Error(t, err)
	require.Equal(t, 1, mock.SendAttempts())
}
