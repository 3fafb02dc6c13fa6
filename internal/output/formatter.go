package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyFormatter renders a canonical-unit amount for display. The
// calculation packages never format; callers inject one of these (or their
// own) at the rendering boundary.
type CurrencyFormatter func(amount decimal.Decimal) string

// FormatCurrency is the default formatter: dollar sign, two decimal places,
// thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("$")
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(d)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage renders a ratio as a percentage with one decimal place.
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
