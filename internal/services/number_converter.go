package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/rules"
)

// AmountInWords spells a whole-unit amount for printed receipts.
// Example: 115500 -> "ONE HUNDRED FIFTEEN THOUSAND FIVE HUNDRED SHILLINGS ONLY"
func AmountInWords(amount decimal.Decimal) string {
	n := rules.Round(amount).IntPart()
	if n == 0 {
		return "ZERO SHILLINGS ONLY"
	}
	return fmt.Sprintf("%s SHILLINGS ONLY", strings.ToUpper(convertNumberToWords(n)))
}

func convertNumberToWords(n int64) string {
	if n == 0 {
		return "ZERO"
	}

	if n < 0 {
		return "MINUS " + convertNumberToWords(-n)
	}

	if n < 20 {
		return units[n]
	}

	if n < 100 {
		u := n % 10
		t := n / 10
		if u == 0 {
			return tens[t]
		}
		return fmt.Sprintf("%s-%s", tens[t], units[u])
	}

	if n < 1000 {
		remainder := n % 100
		text := units[n/100] + " HUNDRED"
		if remainder == 0 {
			return text
		}
		return fmt.Sprintf("%s %s", text, convertNumberToWords(remainder))
	}

	for _, scale := range scales {
		if n < scale.value {
			continue
		}
		remainder := n % scale.value
		text := convertNumberToWords(n/scale.value) + " " + scale.name
		if remainder == 0 {
			return text
		}
		return fmt.Sprintf("%s %s", text, convertNumberToWords(remainder))
	}

	return "NUMBER TOO LARGE"
}

var units = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tens = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
}

// largest first
var scales = []struct {
	value int64
	name  string
}{
	{1000000000, "BILLION"},
	{1000000, "MILLION"},
	{1000, "THOUSAND"},
}
