package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is one flattened line of a sale. Price is the unit price with add-ons included.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"column:sale_id;type:uuid;not null;index"`
	Position    int             `gorm:"column:position;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (SaleItem) TableName() string { return "sale_items" }
