package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as USD with cents and thousands separators.
func FormatCurrency(amount float64) string {
	return formatMoney(decimal.NewFromFloat(amount), 2)
}

// FormatWholeDollars formats an amount as USD rounded to the dollar.
func FormatWholeDollars(amount float64) string {
	return formatMoney(decimal.NewFromFloat(amount), 0)
}

// FormatPercentage formats a ratio (0.2187) as a percentage with 1 decimal (21.9%).
func FormatPercentage(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(1) + "%"
}

// FormatCompact abbreviates axis values: $950k, $1.4M.
func FormatCompact(amount float64) string {
	d := decimal.NewFromFloat(amount)
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return sign + "$" + trimZeros(abs.Shift(-6).StringFixed(2)) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return sign + "$" + trimZeros(abs.Shift(-3).StringFixed(1)) + "k"
	default:
		return sign + "$" + abs.StringFixed(0)
	}
}

func formatMoney(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if d.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
