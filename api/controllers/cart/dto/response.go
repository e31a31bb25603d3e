package cartdto

import (
	"time"

	checkoutsvc "github.com/sandwichpos/pos-backend/internal/checkout"
	"github.com/sandwichpos/pos-backend/internal/orders"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

type LineResponse struct {
	Name             string   `json:"name"`
	Quantity         int      `json:"quantity"`
	UnitPrice        string   `json:"unit_price"`
	Cost             string   `json:"cost"`
	UnresolvedAddons []string `json:"unresolved_addons,omitempty"`
}

// QuoteResponse renders money with two decimals.
type QuoteResponse struct {
	Lines           []LineResponse `json:"lines"`
	Subtotal        string         `json:"subtotal"`
	Discount        string         `json:"discount"`
	DeliveryFee     string         `json:"delivery_fee"`
	Total           string         `json:"total"`
	Received        string         `json:"received"`
	Change          string         `json:"change"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentMethodID *int           `json:"payment_method_id"`
	RequiresTender  bool           `json:"requires_tender"`
}

type ReceiptResponse struct {
	OrderID         string           `json:"order_id"`
	Timestamp       time.Time        `json:"timestamp"`
	Lines           []LineResponse   `json:"lines"`
	Subtotal        string           `json:"subtotal"`
	Discount        string           `json:"discount"`
	DeliveryFee     string           `json:"delivery_fee"`
	Total           string           `json:"total"`
	Received        string           `json:"received"`
	Change          string           `json:"change"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentMethodID *int             `json:"payment_method_id"`
	Customer        *orders.Customer `json:"customer,omitempty"`
}

func NewQuoteResponse(quote *checkoutsvc.QuoteResult) QuoteResponse {
	if quote == nil {
		return QuoteResponse{Lines: []LineResponse{}}
	}
	return QuoteResponse{
		Lines:           newLines(quote.Lines),
		Subtotal:        pricing.Format(quote.Subtotal),
		Discount:        pricing.Format(quote.Discount),
		DeliveryFee:     pricing.Format(quote.DeliveryFee),
		Total:           pricing.Format(quote.Total),
		Received:        pricing.Format(quote.Received),
		Change:          pricing.Format(quote.Change),
		PaymentMethod:   quote.PaymentMethod.String(),
		PaymentMethodID: quote.PaymentMethod.ID(),
		RequiresTender:  quote.RequiresTender,
	}
}

func NewReceiptResponse(receipt *checkoutsvc.Receipt) ReceiptResponse {
	if receipt == nil {
		return ReceiptResponse{Lines: []LineResponse{}}
	}
	resp := ReceiptResponse{
		OrderID:         receipt.OrderID,
		Timestamp:       receipt.Timestamp.UTC(),
		Lines:           newLines(receipt.Lines),
		Subtotal:        pricing.Format(receipt.Subtotal),
		Discount:        pricing.Format(receipt.Discount),
		DeliveryFee:     pricing.Format(receipt.DeliveryFee),
		Total:           pricing.Format(receipt.Total),
		Received:        pricing.Format(receipt.Received),
		Change:          pricing.Format(receipt.Change),
		PaymentMethod:   receipt.PaymentMethod.String(),
		PaymentMethodID: receipt.PaymentMethod.ID(),
	}
	if receipt.Customer != (orders.Customer{}) {
		customer := receipt.Customer
		resp.Customer = &customer
	}
	return resp
}

func newLines(lines []pricing.LineQuote) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, LineResponse{
			Name:             line.Name,
			Quantity:         line.Quantity,
			UnitPrice:        pricing.Format(line.UnitPrice),
			Cost:             pricing.Format(line.Cost),
			UnresolvedAddons: line.Unresolved,
		})
	}
	return out
}
