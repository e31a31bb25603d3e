package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

// SaleItem is one line of a sale as the sales history stores it.
type SaleItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// SaleRequest is the body posted to the sales history when a sale completes.
type SaleRequest struct {
	OrderID         string          `json:"orderId"`
	Timestamp       time.Time       `json:"timestamp"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethodID *int            `json:"paymentMethodId"`
	Discount        decimal.Decimal `json:"discount"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Items           []SaleItem      `json:"items"`
}

type wireSaleItem struct {
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
}

type wireSaleRequest struct {
	OrderID         string         `json:"orderId"`
	Timestamp       string         `json:"timestamp"`
	Total           json.Number    `json:"total"`
	PaymentMethodID *int           `json:"paymentMethodId"`
	Discount        json.Number    `json:"discount"`
	DeliveryFee     json.Number    `json:"deliveryFee"`
	Items           []wireSaleItem `json:"items"`
}

// MarshalJSON writes money as JSON numbers with two decimals and the timestamp as RFC 3339 UTC.
func (r SaleRequest) MarshalJSON() ([]byte, error) {
	items := make([]wireSaleItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, wireSaleItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       money(item.Price),
		})
	}
	return json.Marshal(wireSaleRequest{
		OrderID:         r.OrderID,
		Timestamp:       r.Timestamp.UTC().Format(time.RFC3339Nano),
		Total:           money(r.Total),
		PaymentMethodID: r.PaymentMethodID,
		Discount:        money(r.Discount),
		DeliveryFee:     money(r.DeliveryFee),
		Items:           items,
	})
}

func money(amount decimal.Decimal) json.Number {
	return json.Number(pricing.Format(amount))
}

// BuildOrderPayload assembles the sale record for a confirmed draft. Each
// line's price is the unit price with add-ons folded in, rounded to two
// places; the total is rounded once after discount and delivery fee.
func BuildOrderPayload(orderID string, draft Draft, timestamp time.Time) SaleRequest {
	items := make([]SaleItem, 0, draft.Cart.Len())
	for _, item := range draft.Cart.Items {
		items = append(items, SaleItem{
			ProductName: item.Product.DisplayName(),
			Quantity:    item.Quantity,
			Price:       pricing.Round(pricing.UnitPrice(item)),
		})
	}
	totals := draft.Totals()
	return SaleRequest{
		OrderID:         orderID,
		Timestamp:       timestamp,
		Total:           pricing.Round(totals.Total),
		PaymentMethodID: draft.PaymentMethod.ID(),
		Discount:        pricing.Round(draft.Discount),
		DeliveryFee:     pricing.Round(draft.DeliveryFee),
		Items:           items,
	}
}
