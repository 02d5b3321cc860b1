package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "0.00 ₽"},
		{"under one unit", 99, "0.99 ₽"},
		{"no grouping needed", 73_000, "730.00 ₽"},
		{"single group", 730_000, "7 300.00 ₽"},
		{"income example", 8_500_000, "85 000.00 ₽"},
		{"millions", 123_456_789, "1 234 567.89 ₽"},
		{"exact thousand", 100_000, "1 000.00 ₽"},
		{"negative", -150_050, "-1 500.50 ₽"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatMoney(tt.cents, "₽"))
		})
	}
}

func TestFormatMoneyCustomSymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "85 000.00 $", FormatMoney(8_500_000, "$"))
	require.Equal(t, "85 000.00", FormatMoney(8_500_000, ""), "no trailing space without a symbol")
}
