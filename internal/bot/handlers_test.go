package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/budget-bot/internal/bot/mocks"
	"gitlab.com/yelinaung/budget-bot/internal/finance"
)

func TestStatusText(t *testing.T) {
	t.Parallel()

	snapshot := finance.Snapshot{
		BalanceCents:    7_300_000,
		DailyLimitCents: 730_000,
		DaysLeft:        10,
	}
	want := "📊 Salary period status:\n" +
		"• Days until payday: 10\n" +
		"• Remaining: 73 000.00 ₽\n" +
		"• Daily limit: 7 300.00 ₽"
	require.Equal(t, want, statusText(snapshot, "₽"))
}

func TestStatusTextPaydayShowsOneDay(t *testing.T) {
	t.Parallel()

	snapshot := finance.Snapshot{
		BalanceCents:    100_000,
		DailyLimitCents: 100_000,
		DaysLeft:        0,
	}
	require.Contains(t, statusText(snapshot, "₽"), "Days until payday: 1")
}

func TestBuildExpensesKeyboard(t *testing.T) {
	t.Parallel()

	t.Run("middle page has delete and both nav buttons", func(t *testing.T) {
		t.Parallel()
		keyboard := buildExpensesKeyboard(1, true, []int{4, 5})
		require.Len(t, keyboard.InlineKeyboard, 3)

		require.Equal(t, "Delete #4", keyboard.InlineKeyboard[0][0].Text)
		require.Equal(t, "del:4:1", keyboard.InlineKeyboard[0][0].CallbackData)
		require.Equal(t, "del:5:1", keyboard.InlineKeyboard[1][0].CallbackData)

		nav := keyboard.InlineKeyboard[2]
		require.Len(t, nav, 2)
		require.Equal(t, "page:0", nav[0].CallbackData)
		require.Equal(t, "page:2", nav[1].CallbackData)
	})

	t.Run("single page has no nav row", func(t *testing.T) {
		t.Parallel()
		keyboard := buildExpensesKeyboard(0, false, []int{1})
		require.Len(t, keyboard.InlineKeyboard, 1)
		require.Equal(t, "del:1:0", keyboard.InlineKeyboard[0][0].CallbackData)
	})
}

func TestHandleHelp(t *testing.T) {
	t.Parallel()

	b := &Bot{cfg: testConfig()}
	mock := mocks.NewMockBot()

	b.handleHelpCore(context.Background(), mock, mocks.CommandUpdate(1, 1, "/help"))

	require.Len(t, mock.SentMessages, 1)
	text := mock.SentMessages[0].Text
	require.Contains(t, text, "/status")
	require.Contains(t, text, "/expenses")
	require.Contains(t, text, "/goals add")
	require.Contains(t, text, "/promo CODE")
	require.Contains(t, text, "9:00 (UTC)")
}

func TestDefaultHandlerFallback(t *testing.T) {
	t.Parallel()

	b := &Bot{cfg: testConfig()}
	mock := mocks.NewMockBot()

	b.defaultHandlerCore(context.Background(), mock, mocks.MessageUpdate(1, 1, "what is this"))

	require.Len(t, mock.SentMessages, 1)
	require.Contains(t, mock.SentMessages[0].Text, "I didn't understand that")
}

func TestAdminCommandsSilentForNonAdmins(t *testing.T) {
	t.Parallel()

	b := &Bot{cfg: testConfig()}
	mock := mocks.NewMockBot()
	ctx := context.Background()

	b.handleAdminAddPromoCore(ctx, mock, mocks.CommandUpdate(1, 1, "/admin_add_promo CODE 30 5"))
	b.handleAdminListPromosCore(ctx, mock, mocks.CommandUpdate(1, 1, "/admin_list_promos"))

	require.Empty(t, mock.SentMessages, "non-admins get no reply at all")
}
