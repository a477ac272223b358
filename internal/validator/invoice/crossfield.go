package invoice

import (
	"context"
	"fmt"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// crossFieldValidator checks relationships between different fields.
type crossFieldValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*domain.Bill) []ValidationResult
}

func (v *crossFieldValidator) RuleKey() string                     { return v.ruleKey }
func (v *crossFieldValidator) RuleName() string                    { return v.ruleName }
func (v *crossFieldValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleCrossField }
func (v *crossFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *crossFieldValidator) Validate(_ context.Context, bill *domain.Bill) []ValidationResult {
	return v.validate(bill)
}

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*crossFieldValidator {
	return []*crossFieldValidator{
		{
			ruleKey: "xf.seller.gstin_pan", ruleName: "Cross-field: Seller GSTIN-PAN Match",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return gstinPANCheck("seller", b.Seller.GSTIN, b.Seller.PAN)
			},
		},
		{
			ruleKey: "xf.buyer.gstin_pan", ruleName: "Cross-field: Buyer GSTIN-PAN Match",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return gstinPANCheck("buyer", b.Buyer.GSTIN, b.Buyer.PAN)
			},
		},
		{
			ruleKey: "xf.tax_regime.states", ruleName: "Cross-field: Tax Regime Matches GSTIN States",
			severity: domain.ValidationSeverityError,
			validate: regimeStateCheck,
		},
		{
			ruleKey: "xf.parties.different_gstin", ruleName: "Cross-field: Different Party GSTINs",
			severity: domain.ValidationSeverityWarning,
			validate: func(b *domain.Bill) []ValidationResult {
				if b.Seller.GSTIN == "" || b.Buyer.GSTIN == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: "buyer.gstin",
						Message: "Cross-field: Different Party GSTINs: GSTINs missing, skipping",
					}}
				}
				passed := b.Seller.GSTIN != b.Buyer.GSTIN
				msg := "Cross-field: Different Party GSTINs: seller and buyer have different GSTINs"
				if !passed {
					msg = "Cross-field: Different Party GSTINs: seller and buyer have the same GSTIN"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "buyer.gstin",
					ExpectedValue: "seller.gstin != buyer.gstin",
					ActualValue:   fmt.Sprintf("seller=%s, buyer=%s", b.Seller.GSTIN, b.Buyer.GSTIN),
					Message:       msg,
				}}
			},
		},
	}
}

// regimeStateCheck compares the chosen regime with the GSTIN state prefixes.
// Bills without both GSTINs, or with no tax, are skipped.
func regimeStateCheck(b *domain.Bill) []ValidationResult {
	const name = "Cross-field: Tax Regime Matches GSTIN States"
	if b.TaxRegime == domain.TaxRegimeNone || b.TaxRegime == "" {
		return []ValidationResult{{
			Passed: true, FieldPath: "tax_regime",
			Message: name + ": no tax applied, skipping",
		}}
	}
	derived, err := gst.RegimeForGSTINs(b.Seller.GSTIN, b.Buyer.GSTIN)
	if err != nil {
		return []ValidationResult{{
			Passed: true, FieldPath: "tax_regime",
			Message: name + ": state codes missing, skipping",
		}}
	}
	passed := derived == b.TaxRegime
	msg := fmt.Sprintf("%s: %s matches seller and buyer states", name, b.TaxRegime)
	if !passed {
		msg = fmt.Sprintf("%s: seller state %s and buyer state %s require %s, got %s",
			name, gst.StateCode(b.Seller.GSTIN), gst.StateCode(b.Buyer.GSTIN), derived, b.TaxRegime)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: "tax_regime",
		ExpectedValue: string(derived), ActualValue: string(b.TaxRegime), Message: msg,
	}}
}

func gstinPANCheck(party, gstin, pan string) []ValidationResult {
	fieldPath := fmt.Sprintf("%s.pan", party)
	if gstin == "" || pan == "" {
		return []ValidationResult{{
			Passed: true, FieldPath: fieldPath,
			Message: fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: fields missing, skipping", party),
		}}
	}
	if len(gstin) < 12 {
		return []ValidationResult{{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: fmt.Sprintf("GSTIN[2:12] == %s", pan),
			ActualValue:   gstin,
			Message:       fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN too short", party),
		}}
	}
	gstinPAN := gstin[2:12]
	passed := gstinPAN == pan
	msg := fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN contains matching PAN", party)
	if !passed {
		msg = fmt.Sprintf("Cross-field: %s GSTIN-PAN Match: GSTIN[2:12] %s does not match PAN %s", party, gstinPAN, pan)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmt.Sprintf("GSTIN[2:12] == %s", pan),
		ActualValue:   gstinPAN, Message: msg,
	}}
}
