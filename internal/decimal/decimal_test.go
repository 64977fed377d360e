package decimal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		wantErr bool
	}{
		{name: "fraction", literal: "0.98"},
		{name: "integer", literal: "100"},
		{name: "negative", literal: "-1.5"},
		{name: "exponent", literal: "1e3"},
		{name: "nan", literal: "NaN", wantErr: true},
		{name: "inf", literal: "+inf", wantErr: true},
		{name: "garbage", literal: "whatever", wantErr: true},
		{name: "empty", literal: "", wantErr: true},
		{name: "too large for float", literal: "1e400", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.literal)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.literal, d.String())
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew("NaN") })
}

func TestWithPrecision(t *testing.T) {
	assert.Equal(t, "1.1", WithPrecision(1.11111111111, 1).String())
	assert.Equal(t, "1.11", WithPrecision(1.11111111111, 2).String())
	assert.Equal(t, "1.111", WithPrecision(1.11111111111, 3).String())
	assert.Equal(t, "0.98", WithPrecision(0.98, 2).String())
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(MustNew("37.21"))
	require.NoError(t, err)
	assert.Equal(t, `"37.21"`, string(data))

	var d Decimal
	require.NoError(t, json.Unmarshal([]byte(`"21.37"`), &d))
	assert.Equal(t, "21.37", d.String())
	assert.InDelta(t, 21.37, d.Float64(), 1e-12)

	require.Error(t, json.Unmarshal([]byte(`21.37`), &d))
	require.Error(t, json.Unmarshal([]byte(`"NaN"`), &d))
}

func TestZeroValue(t *testing.T) {
	var d Decimal
	assert.Equal(t, "0", d.String())
	assert.Equal(t, 0.0, d.Float64())
}
