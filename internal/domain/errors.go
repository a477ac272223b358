package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidTaxRegime    = errors.New("invalid tax regime")
	ErrRegimeUndetermined  = errors.New("tax regime cannot be derived from the given GSTINs")
	ErrBillNotFound        = errors.New("bill not found")
	ErrDuplicateBillNumber = errors.New("bill number already exists")
	ErrBillHasSales        = errors.New("bill has a sales record and cannot be deleted")
	ErrBillLocked          = errors.New("bill has a sales record and cannot be modified")
	ErrInvalidBillStatus   = errors.New("invalid bill status")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidBill         = errors.New("bill failed validation")
	ErrSaleNotFound        = errors.New("sales record not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalidPayment      = errors.New("invalid payment")
	ErrInvalidSaleStatus   = errors.New("invalid payment status")
)

// FieldError describes one failed check on a bill.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed error-severity check for a bill.
// It matches ErrInvalidBill under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidBill.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidBill.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidBill }
