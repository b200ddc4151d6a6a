package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	ID         string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     string          `gorm:"size:36;not null;index" json:"user_id"`
	User       User            `gorm:"foreignKey:UserID" json:"-"`
	CartItems  []CartItem      `json:"items"`
	GrandTotal decimal.Decimal `gorm:"-" json:"grand_total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Recalculate sums the item subtotals into GrandTotal. The total is derived,
// never persisted.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.CartItems {
		total = total.Add(item.Subtotal)
	}
	c.GrandTotal = total
}
