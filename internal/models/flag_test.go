package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Flag
	}{
		{"bool", true, true},
		{"int one", int64(1), true},
		{"int zero", int64(0), false},
		{"null", nil, false},
		{"text", "true", true},
		{"bytes", []byte("0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flag(!tt.want)
			require.NoError(t, f.Scan(tt.value))
			assert.Equal(t, tt.want, f)
		})
	}

	var f Flag
	assert.Error(t, f.Scan(3.5))
}

func TestFlag_ValueAndJSON(t *testing.T) {
	v, err := Flag(true).Value()
	require.NoError(t, err)
	assert.Equal(t, true, v)

	var decoded struct {
		Read Flag `json:"read"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"read":1}`), &decoded))
	assert.True(t, bool(decoded.Read))
	assert.Error(t, json.Unmarshal([]byte(`{"read":"maybe"}`), &decoded))
}
