package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/service"
)

func billingConfig() config.BillingConfig {
	return config.BillingConfig{
		DefaultGSTRate: decimal.NewFromInt(18),
		AmountInWords:  true,
	}
}

func TestCalculatorService_Preview_Intrastate(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items: []service.LineItemInput{
			{Description: "Steel rod", Quantity: "2", Rate: "500"},
		},
		GSTRate:   "18",
		TaxRegime: "intrastate",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TaxRegimeIntrastate, res.TaxRegime)
	assert.Equal(t, "1000.00", res.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "90.00", res.Totals.CGST.StringFixed(2))
	assert.Equal(t, "90.00", res.Totals.SGST.StringFixed(2))
	assert.True(t, res.Totals.IGST.IsZero())
	assert.Equal(t, "1180.00", res.Totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "One Thousand One Hundred Eighty Rupees Only", res.AmountInWords)
}

func TestCalculatorService_Preview_ExplicitAmountWins(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items: []service.LineItemInput{
			{Description: "Labour", Quantity: "3", Rate: "10", Amount: "25"},
		},
		GSTRate:   "0",
		TaxRegime: "none",
	})

	require.NoError(t, err)
	assert.Equal(t, "25.00", res.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "25.00", res.Totals.GrandTotal.StringFixed(2))
}

func TestCalculatorService_Preview_DefaultRate(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items:     []service.LineItemInput{{Description: "Widget", Amount: "100"}},
		TaxRegime: "igst",
	})

	require.NoError(t, err)
	assert.Equal(t, "18", res.GSTRate.String())
	assert.Equal(t, "18.00", res.Totals.IGST.StringFixed(2))
	assert.Equal(t, "118.00", res.Totals.GrandTotal.StringFixed(2))
}

func TestCalculatorService_Preview_AutoRegime(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items:       []service.LineItemInput{{Description: "Widget", Amount: "1000"}},
		GSTRate:     "12",
		TaxRegime:   "auto",
		SellerGSTIN: "29ABCDE1234F1Z5",
		BuyerGSTIN:  "27FGHIJ5678K1Z2",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TaxRegimeInterstate, res.TaxRegime)
	assert.Equal(t, "120.00", res.Totals.IGST.StringFixed(2))
}

func TestCalculatorService_Preview_AutoRegimeWithoutGSTIN(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{TaxRegime: "auto", SellerGSTIN: "29ABCDE1234F1Z5"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrRegimeUndetermined)
}

func TestCalculatorService_Preview_InvalidRegime(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{TaxRegime: "vat"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRegime)
}

func TestCalculatorService_Preview_GarbageNumbersCountAsZero(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items: []service.LineItemInput{
			{Description: "Bad row", Quantity: "abc", Rate: "12"},
			{Description: "Good row", Quantity: "1", Rate: "1,000"},
		},
		GSTRate:   "18",
		TaxRegime: "intrastate",
	})

	require.NoError(t, err)
	assert.True(t, res.Items[0].Amount.IsZero())
	assert.Equal(t, "1000.00", res.Totals.Subtotal.StringFixed(2))
}

func TestCalculatorService_Preview_WordsDisabled(t *testing.T) {
	cfg := billingConfig()
	cfg.AmountInWords = false
	svc := service.NewCalculatorService(cfg)

	res, err := svc.Preview(service.PreviewInput{
		Items:     []service.LineItemInput{{Description: "Widget", Amount: "100"}},
		TaxRegime: "none",
	})

	require.NoError(t, err)
	assert.Empty(t, res.AmountInWords)
}

func TestCalculatorService_Preview_WordsOutOfRangeDegrades(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	res, err := svc.Preview(service.PreviewInput{
		Items:     []service.LineItemInput{{Description: "Too big", Amount: "1000000000000000"}},
		TaxRegime: "none",
	})

	require.NoError(t, err)
	assert.Empty(t, res.AmountInWords)
	assert.Equal(t, "1000000000000000", res.Totals.GrandTotal.String())
}

func TestCalculatorService_AmountInWords(t *testing.T) {
	svc := service.NewCalculatorService(billingConfig())

	words, err := svc.AmountInWords("1234.50")
	require.NoError(t, err)
	assert.Equal(t, "One Thousand Two Hundred Thirty Four Rupees and Fifty Paise Only", words)

	_, err = svc.AmountInWords("-5")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.AmountInWords("twelve")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
