package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartdto "github.com/sandwichpos/pos-backend/api/controllers/cart/dto"
	checkoutsvc "github.com/sandwichpos/pos-backend/internal/checkout"
	"github.com/sandwichpos/pos-backend/internal/orders"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

type stubHistory struct {
	ids     []string
	created []orders.SaleRequest
}

func (s *stubHistory) ListOrderIDs(context.Context) ([]string, error) {
	return s.ids, nil
}

func (s *stubHistory) CreateSale(_ context.Context, sale orders.SaleRequest) error {
	s.created = append(s.created, sale)
	s.ids = append(s.ids, sale.OrderID)
	return nil
}

func newCheckoutService(t *testing.T, history *stubHistory) checkoutsvc.Service {
	t.Helper()
	svc, err := checkoutsvc.NewService(history, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), nil, 3)
	if err != nil {
		t.Fatalf("new checkout service: %v", err)
	}
	return svc
}

func checkoutBody(method, received string, customer string) string {
	return fmt.Sprintf(`{
		"items": [{
			"product": {"name": "Club", "size": "Large", "price": 150},
			"quantity": 2,
			"addons": {"cheese": 1},
			"catalog": [{"id": "cheese", "name": "Cheese", "price": "15.50"}]
		}],
		"customer": {"name": %q},
		"discount": 20,
		"delivery_fee": 50,
		"payment_method": %q,
		"amount_received": %s
	}`, customer, method, received)
}

func TestCheckoutRecordsSale(t *testing.T) {
	history := &stubHistory{ids: []string{"SALE001", "SALE009"}}
	handler := Checkout(newCheckoutService(t, history), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody("Cash", "400", "")))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data cartdto.ReceiptResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	receipt := envelope.Data
	if receipt.OrderID != "SALE010" {
		t.Fatalf("expected SALE010 got %s", receipt.OrderID)
	}
	if receipt.Total != "345.50" || receipt.Received != "400.00" || receipt.Change != "54.50" {
		t.Fatalf("unexpected totals %+v", receipt)
	}
	if receipt.Customer != nil {
		t.Fatalf("expected no customer block, got %+v", receipt.Customer)
	}

	if len(history.created) != 1 {
		t.Fatalf("expected one recorded sale got %d", len(history.created))
	}
	sale := history.created[0]
	if sale.OrderID != "SALE010" || sale.PaymentMethodID == nil || *sale.PaymentMethodID != 1 {
		t.Fatalf("unexpected sale %+v", sale)
	}
	if len(sale.Items) != 1 || sale.Items[0].ProductName != "Club (Large)" || sale.Items[0].Price.StringFixed(2) != "165.50" {
		t.Fatalf("unexpected sale items %+v", sale.Items)
	}
}

func TestCheckoutInsufficientPayment(t *testing.T) {
	history := &stubHistory{}
	handler := Checkout(newCheckoutService(t, history), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody("Cash", "300", "")))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInsufficientPayment) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Details["short_by"] != "45.50" || envelope.Error.Details["total"] != "345.50" {
		t.Fatalf("unexpected details %v", envelope.Error.Details)
	}
	if len(history.created) != 0 {
		t.Fatal("short tender must not record a sale")
	}
}

func TestCheckoutCreditCarriesCustomer(t *testing.T) {
	history := &stubHistory{}
	handler := Checkout(newCheckoutService(t, history), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody("Credit", "0", "Ana")))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data cartdto.ReceiptResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	receipt := envelope.Data
	if receipt.OrderID != "SALE001" {
		t.Fatalf("expected first order id, got %s", receipt.OrderID)
	}
	if receipt.Received != receipt.Total || receipt.Change != "0.00" {
		t.Fatalf("credit should be paid in full, got %+v", receipt)
	}
	if receipt.Customer == nil || receipt.Customer.Name != "Ana" {
		t.Fatalf("expected customer on receipt, got %+v", receipt.Customer)
	}
	if receipt.PaymentMethodID == nil || *receipt.PaymentMethodID != 2 {
		t.Fatalf("expected credit id 2, got %v", receipt.PaymentMethodID)
	}
}
