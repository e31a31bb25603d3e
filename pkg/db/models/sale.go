package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a completed order recorded in the sales history.
type Sale struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID         string          `gorm:"column:order_id;not null;uniqueIndex"`
	Timestamp       time.Time       `gorm:"column:sold_at;not null;index"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentMethodID *int            `gorm:"column:payment_method_id"`
	Discount        decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	DeliveryFee     decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null;default:0"`
	Items           []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Sale) TableName() string { return "sales" }
