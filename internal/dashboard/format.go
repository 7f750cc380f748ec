package dashboard

import (
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// formatBRL renders "R$ 1.234,56".
func formatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	out := "R$ " + groupThousands(whole) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatNumber renders v with pt-BR separators and the given number of decimals.
func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	whole, frac, hasFrac := strings.Cut(s, ".")

	out := groupThousands(whole)
	if hasFrac {
		out += "," + frac
	}
	if v < 0 && strings.Trim(out, "0.,") != "" {
		return "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case decimal.Decimal:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

var funcs = template.FuncMap{
	"brl": formatBRL,
	"num": func(v any) string { return formatNumber(toFloat(v), 0) },
	"dec": func(v any, decimals int) string { return formatNumber(toFloat(v), decimals) },
	"pct": func(v float64) string { return formatNumber(v, 1) + "%" },
	"add": func(a, b int) int { return a + b },
}
