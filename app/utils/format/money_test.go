package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", Money(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$25,000.00", Money(decimal.NewFromInt(25000)))
}
