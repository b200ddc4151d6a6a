package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Promotion struct {
	ID                 string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_percentage"`
	StartDate          time.Time       `gorm:"not null" json:"start_date"`
	EndDate            time.Time       `gorm:"not null" json:"end_date"`
	Products           []Product       `gorm:"many2many:promotion_products;" json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"-"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// ActiveAt reports whether the promotion window covers the given instant.
func (p *Promotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
