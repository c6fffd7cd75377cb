// Package money formatea importes decimales para mostrarlos.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format muestra d con dos decimales y coma como separador de miles.
// Ej: 1234567.5 → "1,234,567.50", -12 → "-12.00".
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	var b strings.Builder
	b.Grow(n + n/3 + 4)
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
