// Package amountwords renders rupee amounts as Indian-English words for
// printed invoices, e.g. 12345.50 -> "Twelve Thousand Three Hundred Forty
// Five Rupees and Fifty Paise Only".
package amountwords

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

const (
	maxIntegerDigits  = 15
	maxFractionDigits = 20
)

var maxAmount = decimal.New(1, maxIntegerDigits)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Convert renders amount in words. Negative amounts and amounts of 10^15
// rupees or more fail with domain.ErrInvalidAmount.
func Convert(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: amount is negative", domain.ErrInvalidAmount)
	}
	if amount.IsZero() {
		amount = decimal.Zero
	}

	// Range checks work on digit counts so huge exponents are never expanded.
	magnitude := amount.NumDigits() + int(amount.Exponent())
	switch {
	case magnitude > maxIntegerDigits:
		return "", fmt.Errorf("%w: amount is out of range", domain.ErrInvalidAmount)
	case magnitude < -2:
		amount = decimal.Zero
	case amount.Exponent() < -maxFractionDigits:
		amount = amount.Truncate(maxFractionDigits)
	}

	// Rounding to paise first carries 99.995 into 100.00.
	rounded := amount.Round(2)
	if rounded.GreaterThanOrEqual(maxAmount) {
		return "", fmt.Errorf("%w: amount is out of range", domain.ErrInvalidAmount)
	}

	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(indian(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(belowHundred(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String(), nil
}

// FromFloat is Convert for float input; NaN and infinities are rejected.
func FromFloat(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: %v is not finite", domain.ErrInvalidAmount, amount)
	}
	return Convert(decimal.NewFromFloat(amount))
}

// FromString is Convert for textual input. Unlike the lenient form parsing,
// anything that is not a plain decimal number is rejected.
func FromString(amount string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", fmt.Errorf("%w: not a number", domain.ErrInvalidAmount)
	}
	return Convert(d)
}

// indian spells n (> 0) using crore, lakh and thousand groups.
func indian(n int64) string {
	var parts []string
	if n >= crore {
		parts = append(parts, indian(n/crore), "Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, belowHundred(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, belowHundred(n/thousand), "Thousand")
		n %= thousand
	}
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
