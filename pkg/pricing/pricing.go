package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places used when presenting money.
const DisplayPlaces int32 = 2

// LineItemCost returns price*quantity plus the cost of every selected add-on.
// Add-ons missing from the line's catalog contribute nothing; see UnresolvedAddons.
func LineItemCost(item LineItem) decimal.Decimal {
	base := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return base.Add(addonCost(item))
}

// UnitPrice folds the add-on cost into the product price.
// Receipts and the sales-history payload carry this per-unit figure.
func UnitPrice(item LineItem) decimal.Decimal {
	return item.Product.Price.Add(addonCost(item))
}

// UnresolvedAddons lists selected add-on ids absent from the line's catalog, sorted.
func UnresolvedAddons(item LineItem) []string {
	var missing []string
	for id, qty := range item.Addons {
		if qty <= 0 {
			continue
		}
		if _, ok := item.Catalog[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// CartSubtotal sums LineItemCost over every line. An empty cart costs zero.
func CartSubtotal(cart Cart) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(LineItemCost(item))
	}
	return subtotal
}

// OrderTotal is subtotal - discount + deliveryFee. Negative results are kept.
func OrderTotal(subtotal, discount, deliveryFee decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(deliveryFee)
}

// ChangeDue is received - total. A negative value means the tender is short.
func ChangeDue(received, total decimal.Decimal) decimal.Decimal {
	return received.Sub(total)
}

// Round rounds to DisplayPlaces, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DisplayPlaces)
}

// Format renders an amount with exactly DisplayPlaces decimals.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(DisplayPlaces)
}

func addonCost(item LineItem) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range item.Addons {
		if qty <= 0 {
			continue
		}
		addon, ok := item.Catalog[id]
		if !ok {
			continue
		}
		total = total.Add(addon.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
