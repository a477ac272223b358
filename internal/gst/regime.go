package gst

import (
	"strconv"
	"strings"

	"gstbill/internal/domain"
)

// RegimeAuto asks for the regime to be derived from the seller and buyer GSTINs.
const RegimeAuto = "auto"

var regimeAliases = map[string]domain.TaxRegime{
	"":                domain.TaxRegimeNone,
	"none":            domain.TaxRegimeNone,
	"no_gst":          domain.TaxRegimeNone,
	"intrastate":      domain.TaxRegimeIntrastate,
	"intra":           domain.TaxRegimeIntrastate,
	"same_state":      domain.TaxRegimeIntrastate,
	"cgst_sgst":       domain.TaxRegimeIntrastate,
	"cgst+sgst":       domain.TaxRegimeIntrastate,
	"interstate":      domain.TaxRegimeInterstate,
	"inter":           domain.TaxRegimeInterstate,
	"different_state": domain.TaxRegimeInterstate,
	"igst":            domain.TaxRegimeInterstate,
}

func normalizeRegime(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// ParseTaxRegime maps a regime name or one of its UI aliases to a TaxRegime.
func ParseTaxRegime(s string) (domain.TaxRegime, error) {
	if r, ok := regimeAliases[normalizeRegime(s)]; ok {
		return r, nil
	}
	return "", domain.ErrInvalidTaxRegime
}

// ResolveTaxRegime is ParseTaxRegime plus support for RegimeAuto.
func ResolveTaxRegime(s, sellerGSTIN, buyerGSTIN string) (domain.TaxRegime, error) {
	if normalizeRegime(s) == RegimeAuto {
		return RegimeForGSTINs(sellerGSTIN, buyerGSTIN)
	}
	return ParseTaxRegime(s)
}

// StateCode returns the two-digit state prefix of a GSTIN, or "" when the
// prefix is not a valid state code (01-38).
func StateCode(gstin string) string {
	gstin = strings.TrimSpace(gstin)
	if len(gstin) < 2 {
		return ""
	}
	code, err := strconv.Atoi(gstin[:2])
	if err != nil || code < 1 || code > 38 {
		return ""
	}
	return gstin[:2]
}

// RegimeForGSTINs is intrastate when both parties share a state prefix and
// interstate otherwise.
func RegimeForGSTINs(sellerGSTIN, buyerGSTIN string) (domain.TaxRegime, error) {
	seller, buyer := StateCode(sellerGSTIN), StateCode(buyerGSTIN)
	if seller == "" || buyer == "" {
		return "", domain.ErrRegimeUndetermined
	}
	if seller == buyer {
		return domain.TaxRegimeIntrastate, nil
	}
	return domain.TaxRegimeInterstate, nil
}
