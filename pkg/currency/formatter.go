package currency

import (
	"fmt"
	"math"
	"strings"
)

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
}

// Format renders whole-unit amounts the way the payment page shows them,
// e.g. "₦12,500". Unknown codes are used as a prefix.
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "₦" {
		code = "NGN"
	}

	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, ",")

	prefix, ok := symbols[code]
	if !ok {
		prefix = code + " "
	}

	result := prefix + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func FormatNGN(amount float64) string {
	return Format(amount, "NGN")
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
