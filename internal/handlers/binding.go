package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/services"
)

// BindNestedOrFlat binds the request body to obj, accepting both {"key": {...}} and {...}
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	// Restore body for future binding or subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return unmarshalNestedOrFlat(bodyBytes, key, obj)
}

func unmarshalNestedOrFlat(data []byte, key string, obj interface{}) error {
	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			return json.Unmarshal(val, obj)
		}
	}
	return json.Unmarshal(data, obj)
}

// bindForm binds a form-encoded or JSON body. Failures answer 400 and return false.
func bindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		respondError(c, &services.ValidationError{Message: "Invalid request body"})
		return false
	}
	return true
}

// parseAmount reads a money field sent as a JSON number or a form string. Blank is zero.
func parseAmount(raw json.Number) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, &services.ValidationError{Message: "Invalid amount"}
	}
	return amount, nil
}

// parseOptionalAmount is parseAmount for fields whose absence means "use the default"
func parseOptionalAmount(raw json.Number) (decimal.NullDecimal, error) {
	if strings.TrimSpace(raw.String()) == "" {
		return decimal.NullDecimal{}, nil
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(amount), nil
}
