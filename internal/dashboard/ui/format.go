package ui

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale used for number grouping.
const DefaultLocale = "az"

// Formatter renders numbers with locale grouping.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale such as "az" or "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("ui: parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the configured language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number rounds to the nearest integer and applies grouping. Absent, zero
// and NaN values render as "0".
func (f *Formatter) Number(v *float64) string {
	if v == nil {
		return "0"
	}
	return f.Value(*v)
}

// Value is Number for a plain float.
func (f *Formatter) Value(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "0"
	}
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		return "-∞"
	}
	rounded := math.Floor(v + 0.5)
	if rounded == 0 {
		return "0"
	}
	return f.printer.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// Percent renders a percentage as the service sent it, e.g. "5%" or "-2.5%".
func Percent(v *float64) string {
	if v == nil {
		return ""
	}
	return Plain(v) + "%"
}

// Plain renders a number without rounding or grouping.
func Plain(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func valueOf(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}
