package valueobject

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), INR)
		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})

	t.Run("returns error for unknown currency code", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "ZZZ")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", INR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", INR)
		assert.Error(t, err)
	})
}

func TestZeroValueDefaultsToINR(t *testing.T) {
	var m Money
	assert.True(t, m.IsZero())
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.MustAdd(Rupees(10)).Equals(Rupees(10)))
}

func TestMoneyArithmetic(t *testing.T) {
	a := Rupees(1299)
	b := Rupees(701)

	assert.True(t, a.MustAdd(b).Equals(Rupees(2000)))
	assert.True(t, a.MustSubtract(b).Equals(Rupees(598)))
	assert.True(t, a.Times(3).Equals(Rupees(3897)))

	t.Run("currency mismatch", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(1), USD)
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
		_, err = a.Subtract(usd)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
		assert.Panics(t, func() { a.MustAdd(usd) })
	})
}

func TestMoneyComparison(t *testing.T) {
	assert.Equal(t, -1, Rupees(1).Cmp(Rupees(2)))
	assert.Equal(t, 0, Rupees(2).Cmp(Rupees(2)))
	assert.True(t, Rupees(1).LessThan(Rupees(2)))
	assert.True(t, Rupees(2999).GreaterThanOrEqual(Rupees(2999)))
}

func TestPercentOff(t *testing.T) {
	tests := []struct {
		name      string
		price     int64
		reference int64
		want      int
	}{
		{"simple markdown", 1499, 2499, 40},
		{"rounds half up", 875, 1000, 13},
		{"no markdown", 1000, 1000, 0},
		{"reference below price", 1000, 900, 0},
		{"zero reference", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupees(tt.price).PercentOff(Rupees(tt.reference)))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "₹999", Rupees(999).Display())
	assert.Equal(t, "₹1,299", Rupees(1299).Display())
	assert.Equal(t, "₹0", ZeroINR().Display())
	assert.Equal(t, "1299.00 INR", Rupees(1299).String())

	m, err := NewMoneyFromString("10.5", INR)
	require.NoError(t, err)
	assert.Equal(t, "₹10.50", m.Display())

	t.Run("beyond int64 keeps every digit", func(t *testing.T) {
		huge := Rupees(1899).Times(math.MaxInt64 / 1000)
		want := decimal.NewFromInt(1899).Mul(decimal.NewFromInt(math.MaxInt64 / 1000))
		assert.Equal(t, "₹"+want.String(), huge.Display())
		assert.NotContains(t, huge.Display(), "-")
	})
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(Rupees(2499))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"2499","currency":"INR"}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"199"}`), &m))
	assert.True(t, m.Equals(Rupees(199)))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc","currency":"INR"}`), &m))
}
