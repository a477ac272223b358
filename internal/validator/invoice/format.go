package invoice

import (
	"context"
	"fmt"
	"regexp"

	"gstbill/internal/domain"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
	phonePattern = regexp.MustCompile(`^(\+91[\-\s]?)?[6-9]\d{9}$`)
)

// formatValidator checks a field against a regex.
type formatValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*domain.Bill) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRegex }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, bill *domain.Bill) []ValidationResult {
	return v.validate(bill)
}

// Empty values pass; presence is the job of the required validators.
func regexCheck(fieldPath, value, expected, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value, Message: msg,
	}
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.seller.gstin", ruleName: "Format: Seller GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return []ValidationResult{regexCheck("seller.gstin", b.Seller.GSTIN, "15-char GSTIN format", "Format: Seller GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.buyer.gstin", ruleName: "Format: Buyer GSTIN",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return []ValidationResult{regexCheck("buyer.gstin", b.Buyer.GSTIN, "15-char GSTIN format", "Format: Buyer GSTIN", gstinPattern)}
			},
		},
		{
			ruleKey: "fmt.seller.pan", ruleName: "Format: Seller PAN",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return []ValidationResult{regexCheck("seller.pan", b.Seller.PAN, "10-char PAN format", "Format: Seller PAN", panPattern)}
			},
		},
		{
			ruleKey: "fmt.buyer.pan", ruleName: "Format: Buyer PAN",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				return []ValidationResult{regexCheck("buyer.pan", b.Buyer.PAN, "10-char PAN format", "Format: Buyer PAN", panPattern)}
			},
		},
		{
			ruleKey: "fmt.buyer.phone", ruleName: "Format: Buyer Phone",
			severity: domain.ValidationSeverityWarning,
			validate: func(b *domain.Bill) []ValidationResult {
				return []ValidationResult{regexCheck("buyer.phone", b.Buyer.Phone, "10-digit Indian mobile number", "Format: Buyer Phone", phonePattern)}
			},
		},
		{
			ruleKey: "fmt.item.hsn_code", ruleName: "Format: HSN Code",
			severity: domain.ValidationSeverityWarning,
			validate: func(b *domain.Bill) []ValidationResult {
				results := make([]ValidationResult, 0, len(b.Items))
				for i := range b.Items {
					results = append(results, regexCheck(itemPath(i, "hsn_code"), b.Items[i].HSNCode, "4-8 digit HSN code", "Format: HSN Code", hsnPattern))
				}
				return results
			},
		},
	}
}
