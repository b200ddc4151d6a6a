package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID         string          `gorm:"size:36;not null;index" json:"order_id"`
	Order           *Order          `gorm:"foreignKey:OrderID" json:"-"`
	ProductID       string          `gorm:"size:36;not null;index" json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID" json:"-"`
	ProductName     string          `gorm:"size:255;not null" json:"product_name"`
	Qty             int             `gorm:"not null" json:"qty"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price_at_purchase"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
