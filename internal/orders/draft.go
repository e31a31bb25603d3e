package orders

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/sandwichpos/pos-backend/pkg/enums"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

// Customer holds the optional free-text details taken at the counter.
type Customer struct {
	Name    string `json:"name,omitempty"`
	Number  string `json:"number,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Draft is everything the cashier entered before confirming a sale.
type Draft struct {
	Cart           pricing.Cart
	Customer       Customer
	Discount       decimal.Decimal
	DeliveryFee    decimal.Decimal
	PaymentMethod  enums.PaymentMethod
	AmountReceived decimal.Decimal
}

// Totals are the unrounded money figures derived from a draft.
type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Received decimal.Decimal
	Change   decimal.Decimal
}

// RequiresTender reports whether the cashier must collect an amount.
func (d Draft) RequiresTender() bool {
	return d.PaymentMethod.RequiresTender()
}

// Totals prices the draft. Methods without a tender are treated as paid in full.
func (d Draft) Totals() Totals {
	subtotal := pricing.CartSubtotal(d.Cart)
	total := pricing.OrderTotal(subtotal, d.Discount, d.DeliveryFee)
	received := d.AmountReceived
	if !d.RequiresTender() {
		received = total
	}
	return Totals{
		Subtotal: subtotal,
		Total:    total,
		Received: received,
		Change:   pricing.ChangeDue(received, total),
	}
}

// Unresolved lists, per line index, add-on ids missing from that line's catalog.
func (d Draft) Unresolved() map[int][]string {
	out := map[int][]string{}
	for i, item := range d.Cart.Items {
		if missing := pricing.UnresolvedAddons(item); len(missing) > 0 {
			out[i] = missing
		}
	}
	return out
}

// Validate reports every structural problem with the draft in one validation error.
func (d Draft) Validate() error {
	var errs error
	if d.Cart.Len() == 0 {
		errs = multierr.Append(errs, errEmptyCart)
	}
	errs = multierr.Append(errs, d.Cart.Violations())
	errs = multierr.Append(errs, pricing.NonNegative("discount", d.Discount))
	errs = multierr.Append(errs, pricing.NonNegative("delivery_fee", d.DeliveryFee))
	errs = multierr.Append(errs, pricing.NonNegative("amount_received", d.AmountReceived))
	if strings.TrimSpace(d.PaymentMethod.String()) == "" {
		errs = multierr.Append(errs, errPaymentMethodRequired)
	}
	if d.PaymentMethod == enums.PaymentMethodCredit && strings.TrimSpace(d.Customer.Name) == "" {
		errs = multierr.Append(errs, errCreditNeedsCustomer)
	}
	if errs == nil {
		return nil
	}
	return pricing.ViolationError("invalid order draft", errs)
}
