package gst

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingDecimal = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))(?:[eE]([+-]?\d+))?`)

// Bounds on lenient input. Values of 10^15 or more are treated as malformed,
// and fractional digits past maxFractionDigits are dropped.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 20
	maxExponent       = 20
)

// ParseLenientDecimal reads the leading decimal literal of s and falls back to
// zero when there is none. Surrounding whitespace and digit-grouping commas
// ("1,00,000") are ignored, so half-typed form input never yields an error.
func ParseLenientDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	m := leadingDecimal.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero
	}

	exp := 0
	if m[2] != "" {
		e, err := strconv.Atoi(m[2])
		if err != nil || e > maxExponent || e < -maxExponent {
			return decimal.Zero
		}
		exp = e
	}

	mantissa := strings.TrimSuffix(strings.TrimPrefix(m[1], "+"), ".")
	intPart, frac, _ := strings.Cut(strings.TrimPrefix(mantissa, "-"), ".")
	if len(strings.TrimLeft(intPart, "0"))+exp > maxIntegerDigits {
		return decimal.Zero
	}
	if extra := len(frac) - maxFractionDigits; extra > 0 {
		mantissa = mantissa[:len(mantissa)-extra]
	}

	d, err := decimal.NewFromString(mantissa)
	if err != nil {
		return decimal.Zero
	}
	if exp != 0 {
		d = d.Shift(int32(exp))
	}
	return d
}

// LenientNumber is a JSON value that may arrive as a number, a numeric or
// garbage string, or null. It never fails to unmarshal.
type LenientNumber string

// UnmarshalJSON keeps the raw text of numbers and strings; anything else is empty.
func (n *LenientNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = ""
			return nil
		}
		*n = LenientNumber(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*n = LenientNumber(data)
	default:
		*n = ""
	}
	return nil
}

// Decimal resolves the value through ParseLenientDecimal.
func (n LenientNumber) Decimal() decimal.Decimal {
	return ParseLenientDecimal(string(n))
}

// IsSet reports whether any text was supplied.
func (n LenientNumber) IsSet() bool {
	return strings.TrimSpace(string(n)) != ""
}
