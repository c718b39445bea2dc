package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatCurrencyBRL(0))
	assert.Equal(t, "R$ 58,32", FormatCurrencyBRL(58.32))
	assert.Equal(t, "R$ 1.000,00", FormatCurrencyBRL(1000))
	assert.Equal(t, "R$ 15.000,50", FormatCurrencyBRL(15000.5))
	assert.Equal(t, "R$ 1.234.567,89", FormatCurrencyBRL(1234567.89))
	assert.Equal(t, "R$ -42,10", FormatCurrencyBRL(-42.1))
}
