package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func clubLine() LineItem {
	return LineItem{
		Product:  Product{ID: "p1", Name: "Club Sandwich", Price: d("150.00")},
		Quantity: 2,
		Addons:   AddonSelection{"addon1": 2},
		Catalog:  NewAddonCatalog(Addon{ID: "addon1", Name: "Extra Cheese", Price: d("5.00")}),
	}
}

func TestLineItemCost_WithAddons(t *testing.T) {
	cost := LineItemCost(clubLine())
	assert.True(t, cost.Equal(d("310.00")), "got %s", cost)
}

func TestLineItemCost_EmptyAddonSelection(t *testing.T) {
	line := clubLine()
	line.Addons = nil
	assert.True(t, LineItemCost(line).Equal(d("300")))

	line.Addons = AddonSelection{}
	assert.True(t, LineItemCost(line).Equal(d("300")))
}

func TestLineItemCost_SkipsUnresolvedAddons(t *testing.T) {
	line := clubLine()
	line.Addons = AddonSelection{"addon1": 1, "ghost": 4, "zombie": 1}

	assert.True(t, LineItemCost(line).Equal(d("305")))
	assert.Equal(t, []string{"ghost", "zombie"}, UnresolvedAddons(line))
}

func TestLineItemCost_IgnoresZeroQuantityAddons(t *testing.T) {
	line := clubLine()
	line.Addons = AddonSelection{"addon1": 0, "ghost": 0}

	assert.True(t, LineItemCost(line).Equal(d("300")))
	assert.Empty(t, UnresolvedAddons(line))
}

func TestUnitPrice_FoldsAddonCost(t *testing.T) {
	assert.True(t, UnitPrice(clubLine()).Equal(d("160")))
}

func TestCartSubtotal(t *testing.T) {
	assert.True(t, CartSubtotal(Cart{}).IsZero())

	blt := LineItem{Product: Product{Name: "BLT", Price: d("89.50")}, Quantity: 3}
	cart := Cart{Items: []LineItem{clubLine(), blt}}

	want := LineItemCost(cart.Items[0]).Add(LineItemCost(cart.Items[1]))
	got := CartSubtotal(cart)
	assert.True(t, got.Equal(want))
	assert.True(t, got.Equal(d("578.50")))
	assert.True(t, CartSubtotal(cart).Equal(got), "subtotal must be stable across calls")
}

func TestCartSubtotal_NoIntermediateRounding(t *testing.T) {
	cart := Cart{Items: []LineItem{
		{Product: Product{Name: "Cookie", Price: d("0.333")}, Quantity: 3},
		{Product: Product{Name: "Cookie", Price: d("0.333")}, Quantity: 3},
	}}
	got := CartSubtotal(cart)
	assert.True(t, got.Equal(d("1.998")), "got %s", got)
	assert.Equal(t, "2.00", Format(got))
}

func TestOrderTotal_NoClamping(t *testing.T) {
	assert.True(t, OrderTotal(d("310"), d("20"), d("30")).Equal(d("320")))

	negative := OrderTotal(d("50"), d("80"), d("0"))
	assert.True(t, negative.Equal(d("-30")), "negative totals must be preserved, got %s", negative)
}

func TestChangeDue(t *testing.T) {
	assert.True(t, ChangeDue(d("400"), d("320")).Equal(d("80")))
	assert.True(t, ChangeDue(d("300"), d("320")).Equal(d("-20")))
}

func TestEndToEndScenario(t *testing.T) {
	cart := Cart{Items: []LineItem{clubLine()}}
	quote := QuoteCart(cart, d("20.00"), d("30.00"), d("400.00"))

	require.Len(t, quote.Lines, 1)
	assert.True(t, quote.Lines[0].Cost.Equal(d("310")))
	assert.True(t, quote.Subtotal.Equal(d("310")))
	assert.True(t, quote.Total.Equal(d("320")))
	assert.True(t, quote.Change.Equal(d("80")))
	assert.Equal(t, "80.00", Format(quote.Change))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "2.35", Format(Round(d("2.345"))))
	assert.Equal(t, "-2.35", Format(Round(d("-2.345"))))
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		product Product
		want    string
	}{
		{Product{Name: "Club"}, "Club"},
		{Product{Name: "Club", Size: "Large"}, "Club (Large)"},
		{Product{Name: "Iced Tea", Flavor: "Lemon"}, "Iced Tea - Lemon"},
		{Product{Name: "Iced Tea", Size: "16oz", Flavor: "Lemon"}, "Iced Tea (16oz) - Lemon"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.product.DisplayName())
	}
}
