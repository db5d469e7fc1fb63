package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a KPI tile value with two decimals and thousands
// separators. Chart payloads keep raw floats; only tile values go through here.
func FormatCurrency(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// FormatCount renders an integer KPI tile value with thousands separators.
func FormatCount(n int) string {
	return moneyPrinter.Sprintf("%d", n)
}

// SafeDiv divides a by b, defining division by zero as 0 so ratio metrics
// never propagate NaN.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
