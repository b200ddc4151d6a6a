package fakers

import (
	"fmt"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/models"
)

var menuItems = []string{
	"Iced Latte", "Matcha Frappe", "Butter Croissant", "Chicken Katsu Bento",
	"Beef Rendang Bowl", "Thai Milk Tea", "Smoked Salmon Bagel", "Nasi Goreng Spesial",
	"Tiramisu Slice", "Cold Brew Coffee", "Spicy Ramen Bowl", "Mango Sticky Rice",
}

func ProductFaker(db *gorm.DB, category *models.Category) *models.Product {
	name := fmt.Sprintf("%s %s", menuItems[rand.Intn(len(menuItems))], faker.Word())
	price := decimal.NewFromInt(int64(rand.Intn(46)+5) * 1000)

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
		Price:       price,
		Stock:       rand.Intn(100) + 10,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}
	return product
}
