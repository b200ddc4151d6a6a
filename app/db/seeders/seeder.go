package seeders

import (
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/db/fakers"
	"github.com/fnbapp/backend/app/models"
)

// SeedRoles is idempotent and safe to run on every migrate.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: models.RoleUser, Name: "user"},
		{ID: models.RoleStaff, Name: "staff"},
		{ID: models.RoleAdmin, Name: "admin"},
	}
	for _, role := range roles {
		if err := db.FirstOrCreate(&role, "id = ?", role.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

type Seeder struct {
	Seeder interface{}
}

func SeedersRegister(db *gorm.DB) []Seeder {
	categories := []*models.Category{
		{Name: "Coffee", Slug: "coffee"},
		{Name: "Tea", Slug: "tea"},
		{Name: "Rice Bowls", Slug: "rice-bowls"},
		{Name: "Pastry", Slug: "pastry"},
	}

	seeders := make([]Seeder, 0, len(categories)*4)
	for _, category := range categories {
		seeders = append(seeders, Seeder{Seeder: category})
		for i := 0; i < 3; i++ {
			seeders = append(seeders, Seeder{Seeder: fakers.ProductFaker(db, category)})
		}
	}
	seeders = append(seeders, Seeder{Seeder: fakers.UserFaker(db)})
	return seeders
}

func DBSeed(db *gorm.DB) error {
	if err := SeedRoles(db); err != nil {
		return err
	}
	for _, seeder := range SeedersRegister(db) {
		if err := db.Create(seeder.Seeder).Error; err != nil {
			return err
		}
	}
	return nil
}
