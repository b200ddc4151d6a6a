package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusRemoved   = "removed"
)

type User struct {
	ID                string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Username          string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email             string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone             string     `gorm:"size:20;not null;uniqueIndex" json:"phone_number"`
	PasswordHash      string     `gorm:"size:255;not null" json:"-"`
	RoleID            uint       `gorm:"not null;default:1" json:"role_id"`
	Role              Role       `gorm:"foreignKey:RoleID" json:"-"`
	Status            string     `gorm:"size:20;not null;default:'active'" json:"status"`
	Photo             *string    `gorm:"size:500;null" json:"photo,omitempty"`
	VerificationCode  *string    `gorm:"size:10;null" json:"-"`
	ResetToken        *string    `gorm:"size:255;uniqueIndex;null" json:"-"`
	ResetTokenExpires *time.Time `gorm:"null" json:"-"`
	Addresses         []Address      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsVerified reports whether the account has proven ownership of its email.
// A pending verification code means the account is still unverified.
func (u *User) IsVerified() bool {
	return u.VerificationCode == nil
}
