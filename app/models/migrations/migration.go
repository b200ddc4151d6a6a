package migrations

import (
	"github.com/fnbapp/backend/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Address{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.Promotion{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
