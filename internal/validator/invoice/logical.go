package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// Standard GST slabs, in percent.
var validTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.RequireFromString("0.25"),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
	decimal.NewFromInt(40),
}

var maxTaxRate = decimal.NewFromInt(100)

// logicalValidator checks logical constraints on the bill data.
type logicalValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*domain.Bill) []ValidationResult
}

func (v *logicalValidator) RuleKey() string                     { return v.ruleKey }
func (v *logicalValidator) RuleName() string                    { return v.ruleName }
func (v *logicalValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleLogical }
func (v *logicalValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *logicalValidator) Validate(_ context.Context, bill *domain.Bill) []ValidationResult {
	return v.validate(bill)
}

// LogicalValidators returns all logical validators.
func LogicalValidators() []*logicalValidator {
	return []*logicalValidator{
		{
			ruleKey: "logic.items.at_least_one", ruleName: "Logical: At Least One Line Item",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				passed := len(b.Items) >= 1
				msg := "Logical: At Least One Line Item: bill has line items"
				if !passed {
					msg = "Logical: At Least One Line Item: bill has no line items"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "items",
					ExpectedValue: ">= 1 line item",
					ActualValue:   fmt.Sprintf("%d", len(b.Items)),
					Message:       msg,
				}}
			},
		},
		{
			ruleKey: "logic.item.non_negative", ruleName: "Logical: Line Item Non-Negative Amounts",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				var results []ValidationResult
				for i := range b.Items {
					item := &b.Items[i]
					for _, f := range []struct {
						name string
						val  decimal.Decimal
					}{
						{"quantity", item.Quantity},
						{"rate", item.Rate},
						{"amount", item.Amount},
					} {
						fp := itemPath(i, f.name)
						passed := !f.val.IsNegative()
						msg := fmt.Sprintf("Logical: Line Item Non-Negative Amounts: %s is non-negative", fp)
						if !passed {
							msg = fmt.Sprintf("Logical: Line Item Non-Negative Amounts: %s is negative (%s)", fp, f.val.String())
						}
						results = append(results, ValidationResult{
							Passed: passed, FieldPath: fp,
							ExpectedValue: ">= 0", ActualValue: f.val.String(), Message: msg,
						})
					}
				}
				return results
			},
		},
		{
			ruleKey: "logic.bill.valid_tax_rate", ruleName: "Logical: Valid GST Rate",
			severity: domain.ValidationSeverityWarning,
			validate: func(b *domain.Bill) []ValidationResult {
				passed := false
				for _, r := range validTaxRates {
					if b.GSTRate.Equal(r) {
						passed = true
						break
					}
				}
				msg := "Logical: Valid GST Rate: gst_rate is a standard slab"
				if !passed {
					msg = fmt.Sprintf("Logical: Valid GST Rate: gst_rate %s is not a standard slab", b.GSTRate.String())
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "gst_rate",
					ExpectedValue: "one of {" + ratesList() + "}",
					ActualValue:   b.GSTRate.String(), Message: msg,
				}}
			},
		},
		{
			ruleKey: "logic.bill.rate_bounds", ruleName: "Logical: GST Rate Within Bounds",
			severity: domain.ValidationSeverityError,
			validate: func(b *domain.Bill) []ValidationResult {
				r := b.GSTRate
				passed := !r.IsNegative() && !r.GreaterThan(maxTaxRate) && r.Equal(r.Round(2))
				msg := "Logical: GST Rate Within Bounds: gst_rate is a percentage with at most 2 decimal places"
				if !passed {
					msg = fmt.Sprintf("Logical: GST Rate Within Bounds: gst_rate %s is outside 0-100 or has more than 2 decimal places", r.String())
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "gst_rate",
					ExpectedValue: "0 to 100, at most 2 decimal places", ActualValue: r.String(), Message: msg,
				}}
			},
		},
	}
}

func ratesList() string {
	parts := make([]string, 0, len(validTaxRates))
	for _, r := range validTaxRates {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
