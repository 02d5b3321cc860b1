package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/budget-bot/internal/database"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

func seedUser(t *testing.T, db database.PGXDB, id int64) {
	t.Helper()
	repo := NewUserRepository(db)
	require.NoError(t, repo.GetOrCreate(context.Background(), &models.User{ID: id}, today()))
}

func TestExpenseRepositoryCreateAndSum(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	repo := NewExpenseRepository(tx)
	ctx := context.Background()
	seedUser(t, tx, 2001)

	first := &models.Expense{UserID: 2001, AmountCents: 35_000, Category: "food"}
	second := &models.Expense{UserID: 2001, AmountCents: 120_000, Category: "transport"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NotZero(t, first.ID)
	require.False(t, first.CreatedAt.IsZero())

	start := time.Now().UTC().AddDate(0, 0, -1)
	sum, err := repo.SumSince(ctx, 2001, start)
	require.NoError(t, err)
	require.Equal(t, int64(155_000), sum)

	count, err := repo.CountSince(ctx, 2001, start)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// Future window excludes everything; the sum degrades to zero.
	sum, err = repo.SumSince(ctx, 2001, time.Now().UTC().AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, int64(0), sum)
}

func TestExpenseRepositorySumIsPerUser(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	repo := NewExpenseRepository(tx)
	ctx := context.Background()
	seedUser(t, tx, 2002)
	seedUser(t, tx, 2003)

	require.NoError(t, repo.Create(ctx, &models.Expense{UserID: 2002, AmountCents: 10_000, Category: "food"}))
	require.NoError(t, repo.Create(ctx, &models.Expense{UserID: 2003, AmountCents: 99_000, Category: "food"}))

	start := time.Now().UTC().AddDate(0, 0, -1)
	sum, err := repo.SumSince(ctx, 2002, start)
	require.NoError(t, err)
	require.Equal(t, int64(10_000), sum)
}

func TestExpenseRepositoryListPage(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	repo := NewExpenseRepository(tx)
	ctx := context.Background()
	seedUser(t, tx, 2004)

	for i := range 7 {
		require.NoError(t, repo.Create(ctx, &models.Expense{
			UserID:      2004,
			AmountCents: int64((i + 1) * 1000),
			Category:    "food",
		}))
	}

	page0, total, err := repo.ListPage(ctx, 2004, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.Len(t, page0, 5)
	// Newest first.
	require.Equal(t, int64(7000), page0[0].AmountCents)

	page1, total, err := repo.ListPage(ctx, 2004, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.Len(t, page1, 2)

	empty, _, err := repo.ListPage(ctx, 2004, 2, 5)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestExpenseRepositoryDeleteByIDAndUser(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	repo := NewExpenseRepository(tx)
	ctx := context.Background()
	seedUser(t, tx, 2005)
	seedUser(t, tx, 2006)

	exp := &models.Expense{UserID: 2005, AmountCents: 5_000, Category: "food"}
	require.NoError(t, repo.Create(ctx, exp))

	// Another user cannot delete it.
	deleted, err := repo.DeleteByIDAndUser(ctx, exp.ID, 2006)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = repo.DeleteByIDAndUser(ctx, exp.ID, 2005)
	require.NoError(t, err)
	require.True(t, deleted)

	count, err := repo.CountSince(ctx, 2005, time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestExpenseRepositoryAnalytics(t *testing.T) {
	t.Parallel()
	tx := database.TestTx(t)
	repo := NewExpenseRepository(tx)
	ctx := context.Background()
	seedUser(t, tx, 2007)

	for _, e := range []models.Expense{
		{UserID: 2007, AmountCents: 30_000, Category: "food"},
		{UserID: 2007, AmountCents: 20_000, Category: "food"},
		{UserID: 2007, AmountCents: 45_000, Category: "transport"},
		{UserID: 2007, AmountCents: 1_000, Category: "coffee"},
	} {
		require.NoError(t, repo.Create(ctx, &e))
	}

	start := time.Now().UTC().AddDate(0, 0, -1)

	totals, err := repo.CategoryTotalsSince(ctx, 2007, start, 2)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, CategoryTotal{Category: "food", TotalCents: 50_000}, totals[0])
	require.Equal(t, CategoryTotal{Category: "transport", TotalCents: 45_000}, totals[1])

	day, err := repo.TopSpendingDay(ctx, 2007, start)
	require.NoError(t, err)
	require.NotNil(t, day)
	require.Equal(t, int64(96_000), day.TotalCents)

	none, err := repo.TopSpendingDay(ctx, 2007, time.Now().UTC().AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Nil(t, none)
}
