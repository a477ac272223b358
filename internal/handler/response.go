package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrBillNotFound):
		return http.StatusNotFound, "BILL_NOT_FOUND", "bill not found"
	case errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound, "SALE_NOT_FOUND", "sales record not found"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound, "PAYMENT_NOT_FOUND", "payment not found for this sales record"
	case errors.Is(err, domain.ErrDuplicateBillNumber):
		return http.StatusConflict, "DUPLICATE_BILL_NUMBER", "a bill with this number already exists"
	case errors.Is(err, domain.ErrBillHasSales):
		return http.StatusConflict, "BILL_HAS_SALES", "bill has a sales record; delete the sales record first"
	case errors.Is(err, domain.ErrBillLocked):
		return http.StatusConflict, "BILL_LOCKED", "bill has a sales record and can no longer be edited"
	case errors.Is(err, domain.ErrInvalidBill):
		return http.StatusUnprocessableEntity, "INVALID_BILL", "bill failed validation"
	case errors.Is(err, domain.ErrInvalidPayment):
		return http.StatusBadRequest, "INVALID_PAYMENT", "payment amount must be positive and within the pending amount; mode one of Cash, UPI, Bank Transfer, Cheque"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a non-negative number below 10^15"
	case errors.Is(err, domain.ErrInvalidTaxRegime):
		return http.StatusBadRequest, "INVALID_TAX_REGIME", "invalid tax regime; allowed: none, intrastate, interstate, auto"
	case errors.Is(err, domain.ErrRegimeUndetermined):
		return http.StatusBadRequest, "REGIME_UNDETERMINED", "tax regime auto needs valid seller and buyer GSTINs"
	case errors.Is(err, domain.ErrInvalidBillStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid bill status; allowed: quotation, invoice"
	case errors.Is(err, domain.ErrInvalidSaleStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid payment status; allowed: pending, partially_paid, paid"
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", "invalid date; expected YYYY-MM-DD"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Failed bill checks are listed field by field.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("internal error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	apiErr := &APIError{Code: code, Message: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		apiErr.Details = verr.Fields
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// parsePagination reads offset and limit, clamping limit to 1..100 (default 20).
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
