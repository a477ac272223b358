package invoice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/validator/invoice"
)

func TestLogicalValidators_ValidBill(t *testing.T) {
	ctx := context.Background()
	for _, v := range invoice.LogicalValidators() {
		assert.Equal(t, domain.ValidationRuleLogical, v.RuleType())
		assert.True(t, allPassed(v.Validate(ctx, validBill())), v.RuleKey())
	}
}

func TestLogic_AtLeastOneItem(t *testing.T) {
	v := find(invoice.LogicalValidators(), "logic.items.at_least_one")
	require.NotNil(t, v)

	bill := validBill()
	bill.Items = nil
	results := v.Validate(context.Background(), bill)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "0", results[0].ActualValue)
}

func TestLogic_NonNegativeAmounts(t *testing.T) {
	v := find(invoice.LogicalValidators(), "logic.item.non_negative")
	require.NotNil(t, v)

	bill := validBill()
	bill.Items[0].Amount = decimal.NewFromInt(-5)
	results := v.Validate(context.Background(), bill)

	require.Len(t, results, 3)
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.FieldPath)
		}
	}
	assert.Equal(t, []string{"items[0].amount"}, failed)
}

func TestLogic_TaxRate(t *testing.T) {
	slab := find(invoice.LogicalValidators(), "logic.bill.valid_tax_rate")
	require.NotNil(t, slab)
	ctx := context.Background()

	for rate, isSlab := range map[string]bool{"0": true, "0.25": true, "5": true, "18.00": true, "28": true, "40": true, "7.5": false} {
		bill := validBill()
		bill.GSTRate = decimal.RequireFromString(rate)
		results := slab.Validate(ctx, bill)
		require.Len(t, results, 1)
		assert.Equal(t, isSlab, results[0].Passed, rate)
	}

	assert.Equal(t, domain.ValidationSeverityWarning, slab.Severity())
}

func TestLogic_TaxRateBounds(t *testing.T) {
	bounds := find(invoice.LogicalValidators(), "logic.bill.rate_bounds")
	require.NotNil(t, bounds)
	assert.Equal(t, domain.ValidationSeverityError, bounds.Severity())
	ctx := context.Background()

	tests := []struct {
		rate   string
		passed bool
	}{
		{"0", true},
		{"18", true},
		{"12.50", true},
		{"0.25", true},
		{"100", true},
		{"12.345", false},
		{"-1", false},
		{"100.01", false},
		{"1000", false},
	}
	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			bill := validBill()
			bill.GSTRate = decimal.RequireFromString(tt.rate)
			results := bounds.Validate(ctx, bill)
			require.Len(t, results, 1)
			assert.Equal(t, tt.passed, results[0].Passed)
			assert.Equal(t, "gst_rate", results[0].FieldPath)
		})
	}
}
