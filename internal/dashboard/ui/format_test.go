package ui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestFormatterNumber(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)

	assert.Equal(t, "1,234,568", f.Number(ptr(1234567.6)))
	assert.Equal(t, "0", f.Number(nil))
	assert.Equal(t, "0", f.Number(ptr(0)))
	assert.Equal(t, "0", f.Value(math.NaN()))
	assert.Equal(t, "0", f.Value(0.4))
	assert.Equal(t, "1", f.Value(0.5))
	assert.Equal(t, "-1,234", f.Value(-1234.4))
	assert.Equal(t, "1,000", f.Value(1000))
	assert.Equal(t, "-2", f.Value(-2.5))
}

func TestFormatterBeyondInt64Range(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)

	assert.Equal(t, "10,000,000,000,000,000,000", f.Value(1e19))
	assert.Equal(t, "9,300,000,000,000,000,000", f.Value(9.3e18))
	assert.Equal(t, "-10,000,000,000,000,000,000", f.Value(-1e19))
}

func TestFormatterLocaleGrouping(t *testing.T) {
	f, err := NewFormatter("de")
	require.NoError(t, err)
	assert.Equal(t, "1.234.568", f.Value(1234567.6))
	assert.Equal(t, "de", f.Locale())
}

func TestFormatterDefaultsAndRejectsBadLocale(t *testing.T) {
	f, err := NewFormatter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, f.Locale())

	_, err = NewFormatter("not a locale!")
	assert.Error(t, err)
}

func TestPercentAndPlain(t *testing.T) {
	assert.Equal(t, "5%", Percent(ptr(5)))
	assert.Equal(t, "-2.5%", Percent(ptr(-2.5)))
	assert.Equal(t, "", Percent(nil))
	assert.Equal(t, "0.82", Plain(ptr(0.82)))
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, DirectionUp, DirectionOf(ptr(0.1)))
	assert.Equal(t, DirectionDown, DirectionOf(ptr(-3)))
	assert.Equal(t, DirectionNeutral, DirectionOf(ptr(0)))
	assert.Equal(t, DirectionNeutral, DirectionOf(nil))

	assert.Equal(t, "text-green", DirectionUp.TextClass())
	assert.Equal(t, "text-red", DirectionDown.TextClass())
	assert.Equal(t, "text-gray", DirectionNeutral.TextClass())
	assert.NotEqual(t, DirectionUp.Icon(), DirectionDown.Icon())
}

func TestSeverityClasses(t *testing.T) {
	assert.Equal(t, "text-red", RiskClass("Yüksək"))
	assert.Equal(t, "text-yellow", RiskClass("Orta"))
	assert.Equal(t, "text-green", RiskClass("Aşağı"))

	assert.Equal(t, "insight-positive", InsightClass("Pozitiv"))
	assert.Equal(t, "insight-negative", InsightClass("Neqativ"))
	assert.Equal(t, "insight-neutral", InsightClass("Neytral"))
}
