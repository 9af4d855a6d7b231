package fleet

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.English)

// FormatCurrency renders a money value as fixed two-decimal US dollars with
// thousands grouping. Non-finite inputs render as $0.00.
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	return usd.Sprintf("$%.2f", value)
}
