package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPaid       = "paid"
	OrderStatusDelivering = "delivering"
	OrderStatusRefund     = "refund"
	OrderStatusCancel     = "cancel"
)

type Order struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID      string          `gorm:"size:36;not null;index" json:"user_id"`
	User        User            `gorm:"foreignKey:UserID" json:"-"`
	OrderItems  []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	Status      string          `gorm:"size:20;not null;default:'paid'" json:"status"`

	PaymentToken string `gorm:"size:255" json:"-"`
	PaymentURL   string `gorm:"type:text" json:"payment_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
