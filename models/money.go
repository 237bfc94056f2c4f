package models

import (
	"fmt"

	"cafe-ordering-api/apperr"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise. JSON carries it as rupees (e.g. 304.5).
type Money int64

// MaxAmount bounds any single amount accepted from a client (₹1 crore).
// Sums of a handful of bounded amounts stay far from the int64 limit.
const MaxAmount = Money(1_000_000_000)

var maxPaise = decimal.NewFromInt(int64(MaxAmount))

// Rupees builds a Money from a whole-rupee amount.
func Rupees(r int64) Money { return Money(r * 100) }

// Decimal returns the amount in rupees.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return "₹" + m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MoneyFromDecimal converts a rupee amount; fractions below one paisa are rejected.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	paise := d.Shift(2)
	if !paise.Equal(paise.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", d.String())
	}
	if paise.Abs().GreaterThan(maxPaise) {
		return 0, fmt.Errorf("%w: %s exceeds %s", apperr.ErrAmountOutOfRange, d.String(), MaxAmount)
	}
	return Money(paise.IntPart()), nil
}
