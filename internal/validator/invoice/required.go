package invoice

import (
	"context"
	"fmt"
	"strings"

	"gstbill/internal/domain"
)

// requiredFieldValidator checks that a required field is not blank.
type requiredFieldValidator struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	severity    domain.ValidationSeverity
	extract     func(*domain.Bill) string
	perItem     bool // true for line-item level checks
	extractItem func(*domain.LineItem) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredFieldValidator) Validate(_ context.Context, bill *domain.Bill) []ValidationResult {
	if v.perItem {
		results := make([]ValidationResult, 0, len(bill.Items))
		for i := range bill.Items {
			val := strings.TrimSpace(v.extractItem(&bill.Items[i]))
			fp := itemPath(i, v.fieldPath)
			results = append(results, presence(val, v.ruleName, fp))
		}
		return results
	}
	return []ValidationResult{presence(strings.TrimSpace(v.extract(bill)), v.ruleName, v.fieldPath)}
}

func presence(val, ruleName, fieldPath string) ValidationResult {
	passed := val != ""
	msg := fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed:        passed,
		FieldPath:     fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       msg,
	}
}

// RequiredFieldValidators returns all required field validators.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.bill.number", ruleName: "Required: Bill Number",
			fieldPath: "number", severity: domain.ValidationSeverityError,
			extract: func(b *domain.Bill) string { return b.Number },
		},
		{
			ruleKey: "req.seller.name", ruleName: "Required: Seller Name",
			fieldPath: "seller.name", severity: domain.ValidationSeverityError,
			extract: func(b *domain.Bill) string { return b.Seller.Name },
		},
		{
			ruleKey: "req.buyer.name", ruleName: "Required: Buyer Name",
			fieldPath: "buyer.name", severity: domain.ValidationSeverityError,
			extract: func(b *domain.Bill) string { return b.Buyer.Name },
		},
		{
			ruleKey: "req.item.description", ruleName: "Required: Item Description",
			fieldPath: "description", severity: domain.ValidationSeverityError,
			perItem: true, extractItem: func(li *domain.LineItem) string { return li.Description },
		},
		{
			ruleKey: "req.item.hsn_code", ruleName: "Required: Item HSN Code",
			fieldPath: "hsn_code", severity: domain.ValidationSeverityWarning,
			perItem: true, extractItem: func(li *domain.LineItem) string { return li.HSNCode },
		},
	}
}
