// Package pricing computes bills and validates customer contact details.
package pricing

import (
	"fmt"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"

	"github.com/shopspring/decimal"
)

// TaxRate applies to the subtotal only, never to charges or tip.
var TaxRate = decimal.RequireFromString("0.05")

// ServiceCharge is added to every order that is not takeaway.
const ServiceCharge = models.Money(1000)

// PhoneDigits is the number of digits in a local mobile number.
const PhoneDigits = 10

// TipPresets are the quick-pick tip amounts offered at checkout.
var TipPresets = []models.Money{
	models.Rupees(10),
	models.Rupees(15),
	models.Rupees(20),
	models.Rupees(25),
}

// MaxTip caps a single tip.
const MaxTip = models.Money(1_000_000)

// ChargeFor returns the service or delivery charge for a fulfillment mode.
func ChargeFor(mode models.FulfillmentType) models.Money {
	if mode == models.Takeaway {
		return 0
	}
	return ServiceCharge
}

// Tax returns TaxRate × subtotal, rounded half-up to the paisa.
func Tax(subtotal models.Money) models.Money {
	t := decimal.NewFromInt(int64(subtotal)).Mul(TaxRate).Round(0)
	return models.Money(t.IntPart())
}

// ComputeBill is deterministic and has no side effects.
func ComputeBill(subtotal models.Money, mode models.FulfillmentType, tip models.Money) (models.Bill, error) {
	if tip < 0 {
		return models.Bill{}, apperr.ErrNegativeTip
	}
	if tip > MaxTip {
		return models.Bill{}, fmt.Errorf("%w: %s is above %s", apperr.ErrTipTooLarge, tip, MaxTip)
	}
	if subtotal < 0 || subtotal > models.MaxAmount {
		return models.Bill{}, fmt.Errorf("%w: subtotal %s", apperr.ErrAmountOutOfRange, subtotal)
	}
	b := models.Bill{
		Subtotal: subtotal,
		Charge:   ChargeFor(mode),
		Tax:      Tax(subtotal),
		Tip:      tip,
	}
	b.Total = b.Subtotal + b.Charge + b.Tax + b.Tip
	return b, nil
}

// Digits strips everything but 0-9 from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCustomer checks presence of name and phone first, then the phone
// format. Every violation found is returned in a single *apperr.ValidationError.
func ValidateCustomer(name, phone string) error {
	ve := &apperr.ValidationError{}

	if strings.TrimSpace(name) == "" {
		ve.Add("customer_name", apperr.MissingName, "name is required")
	}
	if strings.TrimSpace(phone) == "" {
		ve.Add("customer_phone", apperr.MissingPhone, "phone number is required")
	} else if len(Digits(phone)) < PhoneDigits {
		ve.Add("customer_phone", apperr.InvalidPhone, "please enter a valid 10-digit phone number")
	}

	return ve.OrNil()
}
