package validator

import (
	"context"

	"go.uber.org/zap"

	"gstbill/internal/domain"
)

// FieldStatus values.
const (
	FieldStatusValid   = "valid"
	FieldStatusInvalid = "invalid"
	FieldStatusUnsure  = "unsure"
)

// ResultItem is a single validation result in a report.
type ResultItem struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
}

// Summary holds aggregate counts of validation results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// FieldStatus is the combined state of every check that touched one field.
type FieldStatus struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages"`
}

// Report is the outcome of validating one bill.
type Report struct {
	Results       []ResultItem            `json:"results"`
	Summary       Summary                 `json:"summary"`
	FieldStatuses map[string]*FieldStatus `json:"field_statuses"`
}

// Err returns a *domain.ValidationError listing every failed error-severity
// check, or nil when the bill may be saved.
func (r *Report) Err() error {
	var fields []domain.FieldError
	for i := range r.Results {
		res := &r.Results[i]
		if !res.Passed && res.Severity == domain.ValidationSeverityError {
			fields = append(fields, domain.FieldError{Field: res.FieldPath, Message: res.Message})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// Engine runs registered rules against bills.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate runs every registered rule against bill.
func (e *Engine) Validate(ctx context.Context, bill *domain.Bill) *Report {
	report := &Report{Results: []ResultItem{}}
	for _, v := range e.registry.All() {
		for _, vr := range v.Validate(ctx, bill) {
			report.Results = append(report.Results, ResultItem{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
			})
		}
	}

	for i := range report.Results {
		res := &report.Results[i]
		switch {
		case res.Passed:
			report.Summary.Passed++
		case res.Severity == domain.ValidationSeverityError:
			report.Summary.Errors++
		default:
			report.Summary.Warnings++
		}
	}
	report.Summary.Total = len(report.Results)
	report.FieldStatuses = computeFieldStatuses(report.Results)

	zap.L().Debug("bill validated",
		zap.String("number", bill.Number),
		zap.Int("results", report.Summary.Total),
		zap.Int("errors", report.Summary.Errors),
		zap.Int("warnings", report.Summary.Warnings),
	)
	return report
}

// A failed error-severity check marks the field invalid; a failed warning
// marks it unsure unless it is already invalid.
func computeFieldStatuses(results []ResultItem) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for i := range results {
		r := &results[i]
		fs, ok := statuses[r.FieldPath]
		if !ok {
			fs = &FieldStatus{Status: FieldStatusValid, Messages: []string{}}
			statuses[r.FieldPath] = fs
		}
		if r.Passed {
			continue
		}
		if r.Severity == domain.ValidationSeverityError {
			fs.Status = FieldStatusInvalid
		} else if fs.Status != FieldStatusInvalid {
			fs.Status = FieldStatusUnsure
		}
		fs.Messages = append(fs.Messages, r.Message)
	}
	return statuses
}
