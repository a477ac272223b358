package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/service"
)

// NextNumberResponse carries a suggested invoice number.
type NextNumberResponse struct {
	Number string `json:"number" example:"MSC/2526/0001"`
}

// BillHandler handles quotation and invoice endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create handles POST /api/v1/bills
// @Summary Create a bill
// @Description Save a quotation or invoice. Totals and amount in words are computed server-side; saving an invoice opens its sales record.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body service.BillInput true "Bill details"
// @Success 201 {object} APIResponse{data=domain.Bill} "Bill created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 409 {object} APIResponse "Bill number already exists"
// @Failure 422 {object} APIResponse "Bill failed validation"
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var input service.BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// Validate handles POST /api/v1/bills/validate
// @Summary Validate a bill
// @Description Run every bill check without saving and return the full report
// @Tags bills
// @Accept json
// @Produce json
// @Param request body service.BillInput true "Bill details"
// @Success 200 {object} APIResponse{data=validator.Report} "Validation report"
// @Failure 400 {object} APIResponse "Validation error"
// @Router /bills/validate [post]
func (h *BillHandler) Validate(c *gin.Context) {
	var input service.BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.billService.Validate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// List handles GET /api/v1/bills
// @Summary List bills
// @Description List quotations and invoices, newest first
// @Tags bills
// @Produce json
// @Param status query string false "quotation or invoice"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Bill,meta=PagMeta} "List of bills"
// @Failure 400 {object} APIResponse "Invalid status"
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	bills, total, err := h.billService.List(c.Request.Context(), c.Query("status"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/bills/:id
// @Summary Get bill by ID
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Bill} "Bill details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// Update handles PUT /api/v1/bills/:id
// @Summary Update a bill
// @Description Replace a bill. Bills with a sales record are locked.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Param request body service.BillInput true "Bill details"
// @Success 200 {object} APIResponse{data=domain.Bill} "Bill updated"
// @Failure 400 {object} APIResponse "Invalid ID or validation error"
// @Failure 404 {object} APIResponse "Bill not found"
// @Failure 409 {object} APIResponse "Bill locked or number taken"
// @Failure 422 {object} APIResponse "Bill failed validation"
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	var input service.BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// Delete handles DELETE /api/v1/bills/:id
// @Summary Delete a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Bill deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Failure 409 {object} APIResponse "Bill has a sales record"
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "bill deleted"})
}

// Duplicate handles POST /api/v1/bills/:id/duplicate
// @Summary Duplicate a bill
// @Description Copy a bill as a new quotation. The body is optional; a blank number is generated.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Param request body service.DuplicateBillInput false "New bill number"
// @Success 201 {object} APIResponse{data=domain.Bill} "Copy created"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Failure 409 {object} APIResponse "Bill number already exists"
// @Router /bills/{id}/duplicate [post]
func (h *BillHandler) Duplicate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	var input service.DuplicateBillInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Duplicate(c.Request.Context(), id, input.Number)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// Convert handles POST /api/v1/bills/:id/convert
// @Summary Convert a quotation to an invoice
// @Description Finalize a bill and open its sales record. Repeating the call returns the existing record.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse{data=service.InvoiceConversion} "Invoice and sales record"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Bill not found"
// @Router /bills/{id}/convert [post]
func (h *BillHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	result, err := h.billService.ConvertToInvoice(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// NextNumber handles GET /api/v1/bills/next-number
// @Summary Suggest the next invoice number
// @Tags bills
// @Produce json
// @Param prefix query string false "Invoice prefix"
// @Param company_name query string false "Company name used when no prefix is given"
// @Success 200 {object} APIResponse{data=NextNumberResponse} "Next number"
// @Router /bills/next-number [get]
func (h *BillHandler) NextNumber(c *gin.Context) {
	number, err := h.billService.NextNumber(c.Request.Context(), c.Query("prefix"), c.Query("company_name"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NextNumberResponse{Number: number})
}
