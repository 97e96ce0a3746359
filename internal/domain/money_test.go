package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_MoneyValue_ToDecimal(t *testing.T) {
	t.Run("units and nano combine exactly", func(t *testing.T) {
		value, err := MoneyValue{Units: "1", Nano: "500000000"}.ToDecimal()
		require.NoError(t, err)
		require.True(t, value.Equal(decimal.RequireFromString("1.5")), "got %s", value)
	})

	t.Run("zero", func(t *testing.T) {
		value, err := MoneyValue{Units: "0", Nano: "0"}.ToDecimal()
		require.NoError(t, err)
		require.True(t, value.IsZero())
	})

	t.Run("negative value", func(t *testing.T) {
		value, err := MoneyValue{Units: "-2", Nano: "-250000000"}.ToDecimal()
		require.NoError(t, err)
		require.True(t, value.Equal(decimal.RequireFromString("-2.25")), "got %s", value)
	})

	t.Run("single nano stays exact", func(t *testing.T) {
		value, err := MoneyValue{Units: "114", Nano: "1"}.ToDecimal()
		require.NoError(t, err)
		require.Equal(t, "114.000000001", value.String())
	})

	t.Run("non-numeric nano", func(t *testing.T) {
		_, err := MoneyValue{Units: "1", Nano: "abc"}.ToDecimal()
		require.ErrorIs(t, err, ErrInvalidMoneyValue)
	})

	t.Run("absent fields", func(t *testing.T) {
		_, err := MoneyValue{}.ToDecimal()
		require.ErrorIs(t, err, ErrInvalidMoneyValue)
	})

	t.Run("fractional units rejected", func(t *testing.T) {
		_, err := MoneyValue{Units: "1.5", Nano: "0"}.ToDecimal()
		require.ErrorIs(t, err, ErrInvalidMoneyValue)
	})
}

func Test_MoneyValue_DecodesGatewayJSON(t *testing.T) {
	// The REST gateway renders int64 units as a JSON string and nano as a
	// number; both shapes must decode.
	var value MoneyValue
	err := json.Unmarshal([]byte(`{"units":"286","nano":620000000}`), &value)
	require.NoError(t, err)

	price, err := value.ToDecimal()
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.RequireFromString("286.62")), "got %s", price)

	_, err = MoneyValue{Units: "x", Nano: "0"}.ToDecimal()
	require.True(t, errors.Is(err, ErrInvalidMoneyValue))
}
