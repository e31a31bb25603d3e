package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sandwichpos/pos-backend/internal/repo"
	"github.com/sandwichpos/pos-backend/pkg/db"
	"github.com/sandwichpos/pos-backend/pkg/db/models"
	"github.com/sandwichpos/pos-backend/pkg/pagination"
)

// ErrDuplicateOrderID is returned by Create when the order id is already recorded.
var ErrDuplicateOrderID = errors.New("order id already recorded")

// Repository persists sales and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListOrderIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, sale *models.Sale) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Sale, error)
	List(ctx context.Context, params pagination.Params) ([]models.Sale, *pagination.Cursor, error)
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

// Summary aggregates the sales recorded in [From, To).
type Summary struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	SaleCount       int64           `json:"sale_count"`
	GrossTotal      decimal.Decimal `json:"gross_total"`
	DiscountTotal   decimal.Decimal `json:"discount_total"`
	DeliveryTotal   decimal.Decimal `json:"delivery_total"`
	ByPaymentMethod []MethodTotal   `json:"by_payment_method"`
}

// MethodTotal is the per payment method slice of a Summary. A nil id groups
// sales taken with an unlisted method.
type MethodTotal struct {
	PaymentMethodID *int            `json:"payment_method_id"`
	SaleCount       int64           `json:"sale_count"`
	Total           decimal.Decimal `json:"total"`
}

type summaryTotals struct {
	SaleCount     int64
	GrossTotal    decimal.Decimal
	DiscountTotal decimal.Decimal
	DeliveryTotal decimal.Decimal
}

type repository struct {
	repo.Base
}

// NewRepository binds a sales repository to the provided DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(conn)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

func (r *repository) ListOrderIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.DB(ctx).Model(&models.Sale{}).Order("order_id ASC").Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create inserts the sale and its items in one transaction.
func (r *repository) Create(ctx context.Context, sale *models.Sale) error {
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		items := sale.Items
		if err := tx.Omit("Items").Create(sale).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		return tx.Create(&items).Error
	})
	if db.IsUniqueViolation(err, "") {
		return ErrDuplicateOrderID
	}
	return err
}

func (r *repository) FindByOrderID(ctx context.Context, orderID string) (*models.Sale, error) {
	var sale models.Sale
	err := r.DB(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("order_id = ?", orderID).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns sales newest first using keyset pagination on (sold_at, id).
func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Sale, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}

	query := r.DB(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Order("sold_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		query = query.Where("sold_at < ? OR (sold_at = ? AND id < ?)", cursor.SoldAt, cursor.SoldAt, cursor.ID)
	}

	var rows []models.Sale
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	page, next := pagination.Page(rows, params.Limit, func(s models.Sale) pagination.Cursor {
		return pagination.Cursor{SoldAt: s.Timestamp, ID: s.ID}
	})
	return page, next, nil
}

func (r *repository) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	var totals summaryTotals
	err := r.DB(ctx).Raw(`
SELECT COUNT(*) AS sale_count,
       COALESCE(SUM(total), 0) AS gross_total,
       COALESCE(SUM(discount), 0) AS discount_total,
       COALESCE(SUM(delivery_fee), 0) AS delivery_total
FROM sales
WHERE sold_at >= ? AND sold_at < ?`, from, to).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var methods []MethodTotal
	err = r.DB(ctx).Raw(`
SELECT payment_method_id,
       COUNT(*) AS sale_count,
       COALESCE(SUM(total), 0) AS total
FROM sales
WHERE sold_at >= ? AND sold_at < ?
GROUP BY payment_method_id`, from, to).Scan(&methods).Error
	if err != nil {
		return nil, err
	}
	for i := range methods {
		methods[i].Total = methods[i].Total.Round(2)
	}
	sort.Slice(methods, func(i, j int) bool {
		a, b := methods[i].PaymentMethodID, methods[j].PaymentMethodID
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return *a < *b
	})

	return &Summary{
		From:            from,
		To:              to,
		SaleCount:       totals.SaleCount,
		GrossTotal:      totals.GrossTotal.Round(2),
		DiscountTotal:   totals.DiscountTotal.Round(2),
		DeliveryTotal:   totals.DeliveryTotal.Round(2),
		ByPaymentMethod: methods,
	}, nil
}
