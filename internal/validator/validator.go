// Package validator runs the built-in bill checks and turns their results
// into a report and, when a check of error severity fails, a domain error.
package validator

import (
	"context"

	"gstbill/internal/domain"
	"gstbill/internal/validator/invoice"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, bill *domain.Bill) []invoice.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
