package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// MoneyValue is the broker's two-part monetary representation: integer
// currency units plus a fractional part scaled by 10^9. The REST gateway
// renders int64 fields as JSON strings, so both fields decode through
// json.Number.
type MoneyValue struct {
	Units json.Number `json:"units"`
	Nano  json.Number `json:"nano"`
}

// ToDecimal combines units and nano into a single exact decimal value.
// Returns ErrInvalidMoneyValue if either field is absent or non-numeric.
func (m MoneyValue) ToDecimal() (decimal.Decimal, error) {
	units, err := strconv.ParseInt(m.Units.String(), 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: units %q", ErrInvalidMoneyValue, m.Units.String())
	}
	nano, err := strconv.ParseInt(m.Nano.String(), 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: nano %q", ErrInvalidMoneyValue, m.Nano.String())
	}

	return decimal.NewFromInt(units).Add(decimal.New(nano, -9)), nil
}
