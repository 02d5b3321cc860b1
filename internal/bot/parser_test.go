package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/budget-bot/internal/models"
)

func TestParseMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole amount", input: "350", want: 35_000},
		{name: "decimal amount", input: "349.90", want: 34_990},
		{name: "single fractional digit", input: "0.5", want: 50},
		{name: "surrounding whitespace", input: " 85000 ", want: 8_500_000},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "sub-cent precision", input: "1.999", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpenseInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantCents    int64
		wantCategory string
		wantNote     string
		wantErr      bool
	}{
		{
			name:         "amount with category",
			input:        "350 food",
			wantCents:    35_000,
			wantCategory: "food",
		},
		{
			name:         "leading plus",
			input:        "+350 food",
			wantCents:    35_000,
			wantCategory: "food",
		},
		{
			name:         "plus with space",
			input:        "+ 350 food",
			wantCents:    35_000,
			wantCategory: "food",
		},
		{
			name:         "category and note",
			input:        "+349.90 coffee flat white with oat milk",
			wantCents:    34_990,
			wantCategory: "coffee",
			wantNote:     "flat white with oat milk",
		},
		{
			name:         "amount only falls back to default category",
			input:        "500",
			wantCents:    50_000,
			wantCategory: models.DefaultCategory,
		},
		{name: "non-numeric amount", input: "lunch 350", wantErr: true},
		{name: "empty", input: "   ", wantErr: true},
		{name: "bare plus", input: "+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expense, err := ParseExpenseInput(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantCents, expense.AmountCents)
			require.Equal(t, tt.wantCategory, expense.Category)
			require.Equal(t, tt.wantNote, expense.Note)
		})
	}
}

func TestParseExpenseInputTruncatesLongCategory(t *testing.T) {
	t.Parallel()

	long := make([]rune, models.MaxCategoryLength+10)
	for i := range long {
		long[i] = 'x'
	}

	expense, err := ParseExpenseInput("100 " + string(long))
	require.NoError(t, err)
	require.Len(t, []rune(expense.Category), models.MaxCategoryLength)
}

func TestParseSalaryInput(t *testing.T) {
	t.Parallel()

	t.Run("day of month", func(t *testing.T) {
		t.Parallel()
		day, date, err := ParseSalaryInput("25")
		require.NoError(t, err)
		require.Nil(t, date)
		require.NotNil(t, day)
		require.Equal(t, 25, *day)
	})

	t.Run("iso date", func(t *testing.T) {
		t.Parallel()
		day, date, err := ParseSalaryInput("2026-09-25")
		require.NoError(t, err)
		require.Nil(t, day)
		require.NotNil(t, date)
		require.Equal(t, time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("dotted date", func(t *testing.T) {
		t.Parallel()
		day, date, err := ParseSalaryInput("25.09.2026")
		require.NoError(t, err)
		require.Nil(t, day)
		require.NotNil(t, date)
		require.Equal(t, time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"0", "32", "soon", "", "2026-13-40"} {
			_, _, err := ParseSalaryInput(input)
			require.ErrorIs(t, err, ErrInvalidSalary, "input %q", input)
		}
	})
}

func TestLooksLikeExpense(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"350 food", true},
		{"+350", true},
		{"+ 350 food", true},
		{"0.5 coffee", true},
		{"hello", false},
		{"/start", false},
		{"+", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, LooksLikeExpense(tt.input), "input %q", tt.input)
	}
}
