package pricing

import "github.com/shopspring/decimal"

// LineQuote is the priced view of one cart line.
type LineQuote struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Cost       decimal.Decimal `json:"cost"`
	Unresolved []string        `json:"unresolved_addons,omitempty"`
}

// Quote aggregates every figure a checkout screen shows. Amounts are unrounded.
type Quote struct {
	Lines       []LineQuote     `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Received    decimal.Decimal `json:"received"`
	Change      decimal.Decimal `json:"change"`
}

// QuoteCart prices the cart and applies discount, delivery fee and tender.
func QuoteCart(cart Cart, discount, deliveryFee, received decimal.Decimal) Quote {
	lines := make([]LineQuote, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, LineQuote{
			Name:       item.Product.DisplayName(),
			Quantity:   item.Quantity,
			UnitPrice:  UnitPrice(item),
			Cost:       LineItemCost(item),
			Unresolved: UnresolvedAddons(item),
		})
	}
	subtotal := CartSubtotal(cart)
	total := OrderTotal(subtotal, discount, deliveryFee)
	return Quote{
		Lines:       lines,
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		Total:       total,
		Received:    received,
		Change:      ChangeDue(received, total),
	}
}

// Unresolved collects every unresolved add-on id across the quote's lines.
func (q Quote) Unresolved() []string {
	var out []string
	for _, line := range q.Lines {
		out = append(out, line.Unresolved...)
	}
	return out
}
