package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sandwichpos/pos-backend/internal/orders"
	"github.com/sandwichpos/pos-backend/pkg/db/models"
	"github.com/sandwichpos/pos-backend/pkg/enums"
	pkgerrors "github.com/sandwichpos/pos-backend/pkg/errors"
	"github.com/sandwichpos/pos-backend/pkg/pagination"
	"github.com/sandwichpos/pos-backend/pkg/pricing"
)

// Service serves the sales-history contract from the local database.
type Service interface {
	ListOrderIDs(ctx context.Context) ([]string, error)
	CreateSale(ctx context.Context, req orders.SaleRequest) error
	RecordSale(ctx context.Context, req orders.SaleRequest) (*orders.SaleRequest, error)
	GetSale(ctx context.Context, orderID string) (*orders.SaleRequest, error)
	ListSales(ctx context.Context, params pagination.Params) (*ListResult, error)
	SalesReport(ctx context.Context, from, to time.Time) (*Summary, error)
}

// ListResult is one page of sales, newest first.
type ListResult struct {
	Sales      []orders.SaleRequest `json:"sales"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the sales service to its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListOrderIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListOrderIDs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order ids")
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *service) CreateSale(ctx context.Context, req orders.SaleRequest) error {
	_, err := s.RecordSale(ctx, req)
	return err
}

// RecordSale validates and stores a sale. A reused order id is a conflict.
func (s *service) RecordSale(ctx context.Context, req orders.SaleRequest) (*orders.SaleRequest, error) {
	if err := validateSale(req); err != nil {
		return nil, err
	}

	sale := toModel(req)
	if err := s.repo.Create(ctx, &sale); err != nil {
		if errors.Is(err, ErrDuplicateOrderID) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order id already recorded").
				WithDetails(map[string]any{"order_id": req.OrderID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record sale")
	}

	out := FromModel(sale)
	return &out, nil
}

func (s *service) GetSale(ctx context.Context, orderID string) (*orders.SaleRequest, error) {
	orderID = strings.TrimSpace(orderID)
	if !orders.IsOrderID(orderID) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must look like SALE001")
	}
	sale, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "sale %s not found", orderID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sale")
	}
	out := FromModel(*sale)
	return &out, nil
}

func (s *service) ListSales(ctx context.Context, params pagination.Params) (*ListResult, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}

	result := &ListResult{Sales: make([]orders.SaleRequest, 0, len(rows))}
	for _, row := range rows {
		result.Sales = append(result.Sales, FromModel(row))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// SalesReport summarizes sales in [from, to). A zero range means today in UTC.
func (s *service) SalesReport(ctx context.Context, from, to time.Time) (*Summary, error) {
	if from.IsZero() && to.IsZero() {
		from = s.now().UTC().Truncate(24 * time.Hour)
		to = from.Add(24 * time.Hour)
	}
	if to.IsZero() {
		to = from.Add(24 * time.Hour)
	}
	from, to = from.UTC(), to.UTC()
	if !from.Before(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from must be before to")
	}

	summary, err := s.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summarize sales")
	}
	return summary, nil
}

func validateSale(req orders.SaleRequest) error {
	var errs error
	if !orders.IsOrderID(req.OrderID) {
		errs = multierr.Append(errs, fmt.Errorf("orderId %q must look like SALE001", req.OrderID))
	}
	if req.Timestamp.IsZero() {
		errs = multierr.Append(errs, errors.New("timestamp is required"))
	}
	if req.PaymentMethodID != nil {
		if _, ok := enums.PaymentMethodFromID(*req.PaymentMethodID); !ok {
			errs = multierr.Append(errs, fmt.Errorf("paymentMethodId %d is unknown", *req.PaymentMethodID))
		}
	}
	errs = multierr.Append(errs, pricing.NonNegative("discount", req.Discount))
	errs = multierr.Append(errs, pricing.NonNegative("deliveryFee", req.DeliveryFee))
	if len(req.Items) == 0 {
		errs = multierr.Append(errs, errors.New("items must not be empty"))
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			errs = multierr.Append(errs, fmt.Errorf("items[%d].productName is required", i))
		}
		if item.Quantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("items[%d].quantity must be at least 1", i))
		}
		errs = multierr.Append(errs, pricing.NonNegative(fmt.Sprintf("items[%d].price", i), item.Price))
	}
	if errs == nil {
		return nil
	}
	return pricing.ViolationError("invalid sale", errs)
}

func toModel(req orders.SaleRequest) models.Sale {
	sale := models.Sale{
		ID:              uuid.New(),
		OrderID:         req.OrderID,
		Timestamp:       req.Timestamp.UTC(),
		Total:           pricing.Round(req.Total),
		PaymentMethodID: req.PaymentMethodID,
		Discount:        pricing.Round(req.Discount),
		DeliveryFee:     pricing.Round(req.DeliveryFee),
		Items:           make([]models.SaleItem, 0, len(req.Items)),
	}
	for i, item := range req.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			ID:          uuid.New(),
			SaleID:      sale.ID,
			Position:    i,
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			Price:       pricing.Round(item.Price),
		})
	}
	return sale
}

// FromModel renders a stored sale in the same shape it was posted in.
func FromModel(sale models.Sale) orders.SaleRequest {
	items := make([]orders.SaleItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, orders.SaleItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return orders.SaleRequest{
		OrderID:         sale.OrderID,
		Timestamp:       sale.Timestamp,
		Total:           sale.Total,
		PaymentMethodID: sale.PaymentMethodID,
		Discount:        sale.Discount,
		DeliveryFee:     sale.DeliveryFee,
		Items:           items,
	}
}
