package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "ZERO SHILLINGS ONLY"},
		{15, "FIFTEEN SHILLINGS ONLY"},
		{42, "FORTY-TWO SHILLINGS ONLY"},
		{5000, "FIVE THOUSAND SHILLINGS ONLY"},
		{115500, "ONE HUNDRED FIFTEEN THOUSAND FIVE HUNDRED SHILLINGS ONLY"},
		{2000001, "TWO MILLION ONE SHILLINGS ONLY"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AmountInWords(decimal.NewFromInt(tt.amount)))
	}
}
