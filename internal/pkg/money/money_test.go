package money_test

import (
	"strings"
	"testing"

	"github.com/finbridge-app/advisory-service/internal/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, money.Round2(1.005))
	assert.Equal(t, -37.5, money.Round2(-37.499999))
	assert.Equal(t, 0.0, money.Round2(0.001))
}

func TestFormat_KnownCurrency(t *testing.T) {
	out := money.Format(-1234.5, "USD", "en-US")
	assert.True(t, strings.HasPrefix(out, "-"), out)
	assert.Contains(t, out, "1,234.50")

	pos := money.Format(42, "EUR", "en-US")
	assert.False(t, strings.HasPrefix(pos, "-"), pos)
	assert.Contains(t, pos, "42.00")
}

func TestFormat_FallsBackOnUnknownCurrency(t *testing.T) {
	assert.Equal(t, "NOPE 12.30", money.Format(12.3, "NOPE", "en-US"))
	assert.Equal(t, "EU 12.30", money.Format(12.3, "EU", "en-US"))
}

func TestFormat_FallsBackOnBadLocale(t *testing.T) {
	assert.Equal(t, "USD -5.00", money.Format(-5, "USD", "!!not a locale!!"))
}

func TestFormat_DefaultsCurrency(t *testing.T) {
	assert.Contains(t, money.Format(3, "", ""), "3.00")
}

func TestFormat_CurrencyDigits(t *testing.T) {
	yen := money.Format(1234.5, "JPY", "ja-JP")
	assert.NotContains(t, yen, ".", yen)
	assert.Contains(t, yen, "1,235")

	// separators follow the locale, the symbol stays in front
	euro := money.Format(-1234.5, "EUR", "de-DE")
	assert.True(t, strings.HasPrefix(euro, "-€"), euro)
	assert.Contains(t, euro, "1.234,50")
}
