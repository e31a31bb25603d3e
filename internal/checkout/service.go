package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandwichpos/pos-backend/internal/orders"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/logger"
	"github.com/sandwichpos/pos-backend/pkg/metrics"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

// SalesHistory is where completed sales are recorded. Both the remote
// sales-history client and the local sales service satisfy it.
type SalesHistory interface {
	orders.OrderIDLister
	CreateSale(ctx context.Context, sale orders.SaleRequest) error
}

// Service runs the checkout pipeline: validate, price, check tender,
// allocate an order id, assemble and record the sale.
type Service interface {
	Quote(ctx context.Context, draft orders.Draft) (*QuoteResult, error)
	Checkout(ctx context.Context, draft orders.Draft) (*Receipt, error)
}

// QuoteResult is the priced draft before anything is recorded.
type QuoteResult struct {
	pricing.Quote
	PaymentMethod  enums.PaymentMethod
	RequiresTender bool
	Unresolved     map[int][]string
}

// Receipt carries the plain values a receipt renderer needs.
type Receipt struct {
	OrderID       string
	Timestamp     time.Time
	Lines         []pricing.LineQuote
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	Received      decimal.Decimal
	Change        decimal.Decimal
	PaymentMethod enums.PaymentMethod
	Customer      orders.Customer
	Attempts      int
}

type service struct {
	history     SalesHistory
	ids         *orders.Generator
	logg        *logger.Logger
	metrics     *metrics.CheckoutMetrics
	maxAttempts int
	now         func() time.Time
}

// NewService wires checkout to a sales history. maxAttempts bounds how many
// order ids are tried when the history reports the id as already taken.
func NewService(history SalesHistory, logg *logger.Logger, m *metrics.CheckoutMetrics, maxAttempts int) (Service, error) {
	if history == nil {
		return nil, fmt.Errorf("sales history required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &service{
		history:     history,
		ids:         orders.NewGenerator(history),
		logg:        logg,
		metrics:     m,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, draft orders.Draft) (*QuoteResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	totals := draft.Totals()
	quote := pricing.QuoteCart(draft.Cart, draft.Discount, draft.DeliveryFee, totals.Received)

	unresolved := draft.Unresolved()
	if len(unresolved) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "unresolved_addons", unresolved), "checkout.addons_unresolved")
	}
	if draft.Discount.GreaterThan(quote.Subtotal) {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"discount": pricing.Format(draft.Discount),
			"subtotal": pricing.Format(quote.Subtotal),
		})
		s.logg.Warn(warnCtx, "checkout.discount_exceeds_subtotal")
	}

	return &QuoteResult{
		Quote:          quote,
		PaymentMethod:  draft.PaymentMethod,
		RequiresTender: draft.RequiresTender(),
		Unresolved:     unresolved,
	}, nil
}

func (s *service) Checkout(ctx context.Context, draft orders.Draft) (*Receipt, error) {
	start := s.now()
	ctx = s.logg.WithField(ctx, "payment_method", draft.PaymentMethod.String())

	receipt, err := s.checkout(ctx, draft)
	if err != nil {
		s.metrics.IncFailed(string(codeOf(err)))
		s.metrics.ObserveDuration("failed", s.now().Sub(start))
		return nil, err
	}

	s.metrics.IncCompleted(paymentLabel(draft.PaymentMethod))
	s.metrics.ObserveDuration("completed", s.now().Sub(start))
	return receipt, nil
}

func (s *service) checkout(ctx context.Context, draft orders.Draft) (*Receipt, error) {
	quote, err := s.Quote(ctx, draft)
	if err != nil {
		return nil, err
	}

	if quote.RequiresTender && quote.Change.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientPayment, "insufficient payment").WithDetails(map[string]any{
			"total":    pricing.Format(quote.Total),
			"received": pricing.Format(quote.Received),
			"short_by": pricing.Format(quote.Change.Neg()),
		})
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		orderID, err := s.ids.Next(ctx)
		if err != nil {
			s.logg.Error(ctx, "checkout.order_id_unavailable", err)
			return nil, err
		}

		orderCtx := s.logg.WithOrderID(ctx, orderID)
		timestamp := s.now().UTC()
		payload := orders.BuildOrderPayload(orderID, draft, timestamp)

		err = s.history.CreateSale(orderCtx, payload)
		if err == nil {
			s.logg.Info(s.logg.WithField(orderCtx, "total", pricing.Format(payload.Total)), "checkout.completed")
			return newReceipt(orderID, timestamp, draft, quote, attempt), nil
		}

		if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			s.logg.Error(orderCtx, "checkout.record_failed", err)
			if pkgerrors.As(err) == nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
			}
			return nil, err
		}

		s.metrics.IncIDConflict()
		s.logg.Warn(s.logg.WithField(orderCtx, "attempt", attempt), "checkout.order_id_conflict")
		lastErr = err
	}

	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "could not allocate a unique order id").
		WithDetails(map[string]any{"attempts": s.maxAttempts})
}

func newReceipt(orderID string, timestamp time.Time, draft orders.Draft, quote *QuoteResult, attempts int) *Receipt {
	return &Receipt{
		OrderID:       orderID,
		Timestamp:     timestamp,
		Lines:         quote.Lines,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		DeliveryFee:   quote.DeliveryFee,
		Total:         quote.Total,
		Received:      quote.Received,
		Change:        quote.Change,
		PaymentMethod: draft.PaymentMethod,
		Customer:      draft.Customer,
		Attempts:      attempts,
	}
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}

func paymentLabel(method enums.PaymentMethod) string {
	if method.IsOther() {
		return "other"
	}
	return method.String()
}
