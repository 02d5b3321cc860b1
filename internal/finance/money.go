package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an integer amount of minor currency units for
// display: two decimal places, space-grouped thousands, and a trailing
// currency symbol. Display only; the output is never parsed back.
func FormatMoney(cents int64, symbol string) string {
	fixed := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	for i := range len(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(intPart[i])
	}
	sb.WriteByte('.')
	sb.WriteString(fracPart)
	if symbol != "" {
		sb.WriteByte(' ')
		sb.WriteString(symbol)
	}
	return sb.String()
}
