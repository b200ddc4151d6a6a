package helpers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "iced-latte", GenerateSlug("Iced Latte"))
	assert.Equal(t, "nasi-goreng-spesial", GenerateSlug("Nasi Goreng Spesial"))
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	err := validator.New().Struct(payload{Email: "nope", Password: "x"})
	require.Error(t, err)

	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	messages := FormatValidationErrors(errs)
	assert.Equal(t, "Email must be a valid email address.", messages["email"])
	assert.Equal(t, "Password must be at least 6 characters.", messages["password"])
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, hasher.Compare(hash, "secret1"))
	assert.False(t, hasher.Compare(hash, "wrong"))
	assert.False(t, hasher.Compare("not-a-hash", "secret1"))
}
