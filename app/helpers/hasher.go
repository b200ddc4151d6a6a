package helpers

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hides the concrete password hashing algorithm from the handlers, so
// it can be swapped without touching orchestration logic.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Compare(hash, password string) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		logrus.Debugf("password compare failed: %v", err)
		return false
	}
	return true
}
