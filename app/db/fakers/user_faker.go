package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/models"
)

func UserFaker(db *gorm.DB) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash faker password:", err)
	}

	return &models.User{
		ID:           uuid.New().String(),
		Username:     faker.Username(),
		Email:        faker.Email(),
		Phone:        faker.Phonenumber(),
		PasswordHash: string(hash),
		RoleID:       models.RoleUser,
		Status:       models.StatusActive,
	}
}
