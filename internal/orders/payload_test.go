package orders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwichpos/pos-backend/pkg/enums"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func sampleDraft(method enums.PaymentMethod) Draft {
	return Draft{
		Cart: pricing.Cart{Items: []pricing.LineItem{
			{
				Product:  pricing.Product{ID: "p1", Name: "Club", Size: "Large", Flavor: "Spicy", Price: dec("150.00")},
				Quantity: 2,
				Addons:   pricing.AddonSelection{"addon1": 2},
				Catalog:  pricing.NewAddonCatalog(pricing.Addon{ID: "addon1", Name: "Cheese", Price: dec("5.00")}),
			},
		}},
		Discount:       dec("20.00"),
		DeliveryFee:    dec("30.00"),
		PaymentMethod:  method,
		AmountReceived: dec("400.00"),
	}
}

var fixedTime = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func TestBuildOrderPayload(t *testing.T) {
	payload := BuildOrderPayload("SALE006", sampleDraft(enums.PaymentMethodCash), fixedTime)

	assert.Equal(t, "SALE006", payload.OrderID)
	assert.Equal(t, fixedTime, payload.Timestamp)
	assert.True(t, payload.Total.Equal(dec("320")))
	require.NotNil(t, payload.PaymentMethodID)
	assert.Equal(t, 1, *payload.PaymentMethodID)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Club (Large) - Spicy", payload.Items[0].ProductName)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.True(t, payload.Items[0].Price.Equal(dec("160")), "unit price folds add-on cost")
}

func TestBuildOrderPayload_PaymentMethodIDs(t *testing.T) {
	cases := map[enums.PaymentMethod]*int{
		enums.PaymentMethodCash:   intPtr(1),
		enums.PaymentMethodCredit: intPtr(2),
		enums.PaymentMethodGCash:  intPtr(3),
		"Voucher":                 nil,
	}
	for method, want := range cases {
		payload := BuildOrderPayload("SALE001", sampleDraft(method), fixedTime)
		assert.Equal(t, want, payload.PaymentMethodID, "method %s", method)
	}
}

func TestBuildOrderPayload_RoundsOnce(t *testing.T) {
	draft := Draft{
		Cart: pricing.Cart{Items: []pricing.LineItem{
			{Product: pricing.Product{Name: "Cookie", Price: dec("0.333")}, Quantity: 3},
			{Product: pricing.Product{Name: "Cookie", Price: dec("0.333")}, Quantity: 3},
		}},
		PaymentMethod: enums.PaymentMethodGCash,
	}
	payload := BuildOrderPayload("SALE001", draft, fixedTime)

	assert.Equal(t, "2.00", pricing.Format(payload.Total))
	assert.Equal(t, "0.33", pricing.Format(payload.Items[0].Price))
}

func TestBuildOrderPayload_IsPure(t *testing.T) {
	draft := sampleDraft(enums.PaymentMethodCash)
	first := BuildOrderPayload("SALE002", draft, fixedTime)
	second := BuildOrderPayload("SALE002", draft, fixedTime)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, draft.Cart.Items[0].Addons["addon1"])
}

func TestSaleRequestMarshalJSON(t *testing.T) {
	payload := BuildOrderPayload("SALE006", sampleDraft("Voucher"), fixedTime)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"orderId": "SALE006",
		"timestamp": "2024-03-09T14:30:00Z",
		"total": 320.00,
		"paymentMethodId": null,
		"discount": 20.00,
		"deliveryFee": 30.00,
		"items": [{"productName": "Club (Large) - Spicy", "quantity": 2, "price": 160.00}]
	}`, string(raw))
	assert.Contains(t, string(raw), `"total":320.00`)
}

func TestDraftTotals(t *testing.T) {
	cash := sampleDraft(enums.PaymentMethodCash).Totals()
	assert.True(t, cash.Subtotal.Equal(dec("310")))
	assert.True(t, cash.Total.Equal(dec("320")))
	assert.True(t, cash.Change.Equal(dec("80")))

	gcash := sampleDraft(enums.PaymentMethodGCash).Totals()
	assert.True(t, gcash.Received.Equal(dec("320")))
	assert.True(t, gcash.Change.IsZero())
}

func TestDraftValidate(t *testing.T) {
	assert.NoError(t, sampleDraft(enums.PaymentMethodCash).Validate())

	credit := sampleDraft(enums.PaymentMethodCredit)
	err := credit.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, violationsOf(t, err), "customer.name is required for credit sales")

	credit.Customer.Name = "Juan"
	assert.NoError(t, credit.Validate())

	bad := Draft{Discount: dec("-1"), PaymentMethod: " "}
	assert.ElementsMatch(t, []string{
		"cart must contain at least one item",
		"discount cannot be negative",
		"payment_method is required",
	}, violationsOf(t, bad.Validate()))
}

func TestDraftUnresolved(t *testing.T) {
	draft := sampleDraft(enums.PaymentMethodCash)
	draft.Cart.Items[0].Addons["ghost"] = 1
	assert.Equal(t, map[int][]string{0: {"ghost"}}, draft.Unresolved())
}

func violationsOf(t *testing.T, err error) []string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	violations, ok := details["violations"].([]string)
	require.True(t, ok)
	return violations
}

func intPtr(v int) *int {
	return &v
}
