// Package money converts between reais and the integer cents stored in the
// database, and renders amounts in Brazilian notation.
package money

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// ReaisToCents converts an amount in reais to cents, rounding half away from zero.
func ReaisToCents(reais float64) (int64, error) {
	if math.IsNaN(reais) || math.IsInf(reais, 0) {
		return 0, ErrInvalidAmount
	}
	return DecimalToCents(decimal.NewFromFloat(reais))
}

// DecimalToCents converts a decimal amount in reais to cents. Amounts whose
// cents do not fit in an int64 are rejected with ErrInvalidAmount.
func DecimalToCents(reais decimal.Decimal) (int64, error) {
	cents := reais.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// CentsToReais converts cents to an exact decimal amount in reais.
func CentsToReais(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ParseBRL parses user input such as "R$ 1.234,56", "1234,56" or "1234.56".
// A comma alone is a decimal separator; when both separators are present the
// dots group thousands.
func ParseBRL(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(strings.Replace(s, "R$", "", 1))
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	switch {
	case strings.Contains(v, ",") && strings.Contains(v, "."):
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case strings.Contains(v, ","):
		v = strings.Replace(v, ",", ".", 1)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatBRL renders cents as "R$ 1.234,56".
func FormatBRL(cents int64) string {
	sign := ""
	whole, frac := cents/100, cents%100
	if cents < 0 {
		sign = "-"
		whole, frac = -whole, -frac
	}

	return sign + "R$ " + printer.Sprint(number.Decimal(whole)) + "," + twoDigits(frac)
}

func twoDigits(n int64) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

// Amount is a value in reais read from JSON either as a number or as a
// string in Brazilian notation. It never passes through float64.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a float, mostly for literals.
func NewAmount(reais float64) Amount {
	return Amount{decimal.NewFromFloat(reais)}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		d, err := ParseBRL(s)
		if err != nil {
			return err
		}
		a.Decimal = d
		return nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return ErrInvalidAmount
	}
	a.Decimal = d
	return nil
}

// MarshalJSON writes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Cents converts the amount with the same bounds as DecimalToCents.
func (a Amount) Cents() (int64, error) {
	return DecimalToCents(a.Decimal)
}
