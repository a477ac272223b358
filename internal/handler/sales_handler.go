package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/service"
)

// SalesHandler handles the sales ledger and payment endpoints.
type SalesHandler struct {
	salesService service.SalesService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(salesService service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// List handles GET /api/v1/sales
// @Summary List sales records
// @Tags sales
// @Produce json
// @Param status query string false "pending, partially_paid, paid or all"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} APIResponse{data=[]domain.Sale} "Sales records"
// @Failure 400 {object} APIResponse "Invalid filter"
// @Router /sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter service.SalesFilterInput
	if err := c.ShouldBindQuery(&filter); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sales, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sales)
}

// Stats handles GET /api/v1/sales/stats
// @Summary Sales ledger totals
// @Tags sales
// @Produce json
// @Success 200 {object} APIResponse{data=domain.SalesStats} "Ledger totals"
// @Router /sales/stats [get]
func (h *SalesHandler) Stats(c *gin.Context) {
	stats, err := h.salesService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// GetByID handles GET /api/v1/sales/:id
// @Summary Get a sales record with its payments
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Sale} "Sales record"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Sales record not found"
// @Router /sales/{id} [get]
func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sale ID")
		return
	}

	sale, err := h.salesService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sale)
}

// Delete handles DELETE /api/v1/sales/:id
// @Summary Delete a sales record and its payments
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Success 200 {object} APIResponse "Sales record deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Sales record not found"
// @Router /sales/{id} [delete]
func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sale ID")
		return
	}

	if err := h.salesService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "sales record deleted"})
}

// AddPayment handles POST /api/v1/sales/:id/payments
// @Summary Record a payment
// @Description Add a payment and recompute received, pending and status
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Param request body service.PaymentInput true "Payment details"
// @Success 201 {object} APIResponse{data=domain.Sale} "Updated sales record"
// @Failure 400 {object} APIResponse "Invalid payment"
// @Failure 404 {object} APIResponse "Sales record not found"
// @Router /sales/{id}/payments [post]
func (h *SalesHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sale ID")
		return
	}

	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sale, err := h.salesService.AddPayment(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sale)
}

// DeletePayment handles DELETE /api/v1/sales/:id/payments/:paymentId
// @Summary Remove a payment
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Param paymentId path string true "Payment ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Sale} "Updated sales record"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Sales record or payment not found"
// @Router /sales/{id}/payments/{paymentId} [delete]
func (h *SalesHandler) DeletePayment(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sale ID")
		return
	}
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payment ID")
		return
	}

	sale, err := h.salesService.DeletePayment(c.Request.Context(), saleID, paymentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sale)
}
