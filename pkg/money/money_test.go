package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"currency symbol and commas", "$1,234.56", 123456},
		{"negative", "-45.00", -4500},
		{"parentheses as negative", "(45.00)", -4500},
		{"plain integer", "12", 1200},
		{"no decimals", "$300", 30000},
		{"rounds to nearest cent", "10.999", 1100},
		{"zero", "0.00", 0},
		{"whitespace", "  8.25 ", 825},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-numeric input", func(t *testing.T) {
		for _, input := range []string{"", "abc", "$", "--", "..", "N/A"} {
			_, err := ParseAmount(input)
			assert.Error(t, err, input)
		}
	})
}

func TestMoney(t *testing.T) {
	t.Run("amount and currency", func(t *testing.T) {
		m := New(-4500, USD)
		assert.Equal(t, int64(-4500), m.Amount())
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.IsNegative())
	})

	t.Run("add", func(t *testing.T) {
		sum, err := New(1050, USD).Add(New(-550, USD))
		require.NoError(t, err)
		assert.Equal(t, int64(500), sum.Amount())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := New(100, USD).Add(New(100, "EUR"))
		assert.Error(t, err)
	})

	t.Run("display", func(t *testing.T) {
		assert.Equal(t, "$12.34", New(1234, USD).Display())
	})

	t.Run("nil safety", func(t *testing.T) {
		var m *Money
		assert.Equal(t, int64(0), m.Amount())
		assert.Equal(t, "", m.Currency())
		assert.False(t, m.IsNegative())
	})

	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Zero(USD).Amount())
	})
}
