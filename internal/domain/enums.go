package domain

// TaxRegime selects how the GST rate is applied to the taxable value.
type TaxRegime string

const (
	// TaxRegimeNone computes no tax lines at all.
	TaxRegimeNone TaxRegime = "none"
	// TaxRegimeIntrastate splits the rate into equal CGST and SGST halves.
	TaxRegimeIntrastate TaxRegime = "intrastate"
	// TaxRegimeInterstate applies the full rate as IGST.
	TaxRegimeInterstate TaxRegime = "interstate"
)

// Valid reports whether r is one of the three known regimes.
func (r TaxRegime) Valid() bool {
	switch r {
	case TaxRegimeNone, TaxRegimeIntrastate, TaxRegimeInterstate:
		return true
	}
	return false
}

// BillStatus distinguishes a quotation from a finalized invoice.
type BillStatus string

const (
	BillStatusQuotation BillStatus = "quotation"
	BillStatusInvoice   BillStatus = "invoice"
)

// Valid reports whether s is a known bill status.
func (s BillStatus) Valid() bool {
	return s == BillStatusQuotation || s == BillStatusInvoice
}

// PaymentStatus tracks how much of a sale has been collected.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// PaymentMode is how a payment was received.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeCheque       PaymentMode = "Cheque"
)

// AllowedPaymentModes lists the accepted payment modes.
var AllowedPaymentModes = map[PaymentMode]bool{
	PaymentModeCash:         true,
	PaymentModeUPI:          true,
	PaymentModeBankTransfer: true,
	PaymentModeCheque:       true,
}

// ValidationSeverity indicates whether a failed check blocks saving.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationRuleType groups bill checks by kind.
type ValidationRuleType string

const (
	ValidationRuleRequired   ValidationRuleType = "required"
	ValidationRuleRegex      ValidationRuleType = "regex"
	ValidationRuleCrossField ValidationRuleType = "cross_field"
	ValidationRuleLogical    ValidationRuleType = "logical"
)
