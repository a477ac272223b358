// Package invoicenum generates sequential invoice numbers per company prefix
// and Indian financial year, e.g. MSC/2526/0001.
package invoicenum

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultPrefix is used when neither a prefix nor a company name is known.
const DefaultPrefix = "INV"

// FinancialYear returns the short April-March financial year containing t,
// e.g. "2526" for any date from 1 April 2025 to 31 March 2026.
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d%02d", start%100, (start+1)%100)
}

// Prefix picks the invoice prefix: the explicit one, else the first three
// letters of the company name upper-cased, else DefaultPrefix.
func Prefix(prefix, companyName string) string {
	if p := strings.TrimSpace(prefix); p != "" {
		return p
	}
	name := strings.TrimSpace(companyName)
	if name == "" {
		return DefaultPrefix
	}
	if utf8.RuneCountInString(name) > 3 {
		name = string([]rune(name)[:3])
	}
	return strings.ToUpper(name)
}

// SearchPrefix is the leading part shared by every number in the same series.
func SearchPrefix(prefix string, t time.Time) string {
	return prefix + "/" + FinancialYear(t) + "/"
}

// Next returns the number following last in the prefix/financial-year series.
// An empty or unparseable last number starts the series at 0001.
func Next(prefix, last string, t time.Time) string {
	seq := 1
	if parts := strings.Split(strings.TrimSpace(last), "/"); len(parts) == 3 {
		if n, err := strconv.Atoi(parts[2]); err == nil && n >= 0 {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", SearchPrefix(prefix, t), seq)
}
