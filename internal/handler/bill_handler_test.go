package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/internal/validator"
	"gstbill/mocks"
)

func newBillHandler() (*handler.BillHandler, *mocks.MockBillService) {
	mockSvc := new(mocks.MockBillService)
	return handler.NewBillHandler(mockSvc), mockSvc
}

func TestBillHandler_Create_Success(t *testing.T) {
	h, mockSvc := newBillHandler()

	expected := &domain.Bill{ID: uuid.New(), Number: "MSC/2526/0001", Status: domain.BillStatusQuotation}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.BillInput) bool {
		return in.Seller.Name == "Mudra Steel Corp" && len(in.Items) == 1 && in.Items[0].Amount == "1000"
	})).Return(expected, nil)

	c, w := newContext(http.MethodPost, "/api/v1/bills", map[string]interface{}{
		"seller":     map[string]string{"name": "Mudra Steel Corp"},
		"buyer":      map[string]string{"name": "Kaveri Traders"},
		"items":      []map[string]interface{}{{"description": "Rod", "amount": 1000}},
		"gst_rate":   18,
		"tax_regime": "intrastate",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "MSC/2526/0001", data["number"])
	mockSvc.AssertExpectations(t)
}

func TestBillHandler_Create_BadStatus(t *testing.T) {
	h, mockSvc := newBillHandler()

	c, w := newContext(http.MethodPost, "/api/v1/bills", `{"status":"draft"}`)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillHandler_Create_ValidationFailed(t *testing.T) {
	h, mockSvc := newBillHandler()

	verr := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "buyer.name", Message: "Required: Buyer Name is missing"},
	}}
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, verr)

	c, w := newContext(http.MethodPost, "/api/v1/bills", `{"seller":{"name":"A"}}`)

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_BILL", resp.Error.Code)
	assert.Equal(t, verr.Fields, resp.Error.Details)
}

func TestBillHandler_Create_DuplicateNumber(t *testing.T) {
	h, mockSvc := newBillHandler()

	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateBillNumber)

	c, w := newContext(http.MethodPost, "/api/v1/bills", `{"number":"MSC/2526/0001"}`)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_BILL_NUMBER", decodeResponse(t, w).Error.Code)
}

func TestBillHandler_Validate(t *testing.T) {
	h, mockSvc := newBillHandler()

	report := &validator.Report{Summary: validator.Summary{Total: 3, Passed: 2, Errors: 1}}
	mockSvc.On("Validate", mock.Anything, mock.Anything).Return(report, nil)

	c, w := newContext(http.MethodPost, "/api/v1/bills/validate", `{"buyer":{"name":"B"}}`)

	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["errors"])
}

func TestBillHandler_List(t *testing.T) {
	h, mockSvc := newBillHandler()

	bills := []domain.Bill{{ID: uuid.New()}, {ID: uuid.New()}}
	mockSvc.On("List", mock.Anything, "invoice", 0, 20).Return(bills, 7, nil)

	c, w := newContext(http.MethodGet, "/api/v1/bills?status=invoice&limit=500", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, &handler.PagMeta{Total: 7, Offset: 0, Limit: 20}, resp.Meta)
	assert.Len(t, resp.Data, 2)
}

func TestBillHandler_List_InvalidStatus(t *testing.T) {
	h, mockSvc := newBillHandler()

	mockSvc.On("List", mock.Anything, "paid", 10, 5).Return(nil, 0, domain.ErrInvalidBillStatus)

	c, w := newContext(http.MethodGet, "/api/v1/bills?status=paid&offset=10&limit=5", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", decodeResponse(t, w).Error.Code)
}

func TestBillHandler_GetByID(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(&domain.Bill{ID: id}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/bills/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBillHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrBillNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/bills/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BILL_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestBillHandler_InvalidID(t *testing.T) {
	h, _ := newBillHandler()

	for name, fn := range map[string]gin.HandlerFunc{
		"get":       h.GetByID,
		"update":    h.Update,
		"delete":    h.Delete,
		"duplicate": h.Duplicate,
		"convert":   h.Convert,
	} {
		t.Run(name, func(t *testing.T) {
			c, w := newContext(http.MethodPost, "/api/v1/bills/not-a-uuid", `{}`)
			c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

			fn(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
		})
	}
}

func TestBillHandler_Update_Locked(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.Anything).Return(nil, domain.ErrBillLocked)

	c, w := newContext(http.MethodPut, "/api/v1/bills/"+id.String(), `{"notes":"x"}`)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BILL_LOCKED", decodeResponse(t, w).Error.Code)
}

func TestBillHandler_Delete_HasSales(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(domain.ErrBillHasSales)

	c, w := newContext(http.MethodDelete, "/api/v1/bills/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BILL_HAS_SALES", decodeResponse(t, w).Error.Code)
}

func TestBillHandler_Delete_Success(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/bills/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestBillHandler_Duplicate_EmptyBody(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("Duplicate", mock.Anything, id, "").Return(&domain.Bill{ID: uuid.New(), Status: domain.BillStatusQuotation}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/bills/"+id.String()+"/duplicate", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Duplicate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestBillHandler_Duplicate_WithNumber(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	mockSvc.On("Duplicate", mock.Anything, id, "Q-42").Return(&domain.Bill{ID: uuid.New(), Number: "Q-42"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/bills/"+id.String()+"/duplicate", `{"number":"Q-42"}`)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Duplicate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestBillHandler_Convert(t *testing.T) {
	h, mockSvc := newBillHandler()

	id := uuid.New()
	conv := &service.InvoiceConversion{
		Bill: &domain.Bill{ID: id, Status: domain.BillStatusInvoice},
		Sale: &domain.Sale{ID: uuid.New(), BillID: id, Status: domain.PaymentStatusPending},
	}
	mockSvc.On("ConvertToInvoice", mock.Anything, id).Return(conv, nil)

	c, w := newContext(http.MethodPost, "/api/v1/bills/"+id.String()+"/convert", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Convert(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Contains(t, data, "bill")
	assert.Contains(t, data, "sale")
}

func TestBillHandler_NextNumber(t *testing.T) {
	h, mockSvc := newBillHandler()

	mockSvc.On("NextNumber", mock.Anything, "msc", "").Return("MSC/2526/0003", nil)

	c, w := newContext(http.MethodGet, "/api/v1/bills/next-number?prefix=msc", nil)

	h.NextNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "MSC/2526/0003", data["number"])
}

func TestBillHandler_NextNumber_RepoFailure(t *testing.T) {
	h, mockSvc := newBillHandler()

	mockSvc.On("NextNumber", mock.Anything, "", "").Return("", errors.New("db down"))

	c, w := newContext(http.MethodGet, "/api/v1/bills/next-number", nil)

	h.NextNumber(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}
