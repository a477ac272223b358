package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/gst"
	"gstbill/internal/service"
)

// AmountInWordsRequest is the body of POST /api/v1/gst/amount-in-words.
// The amount may be sent as a JSON number or a numeric string.
type AmountInWordsRequest struct {
	Amount gst.LenientNumber `json:"amount" binding:"required" example:"1180.50"`
}

// AmountInWordsResponse carries the rendered words.
type AmountInWordsResponse struct {
	Amount string `json:"amount" example:"1180.50"`
	Words  string `json:"words" example:"One Thousand One Hundred Eighty Rupees and Fifty Paise Only"`
}

// CalculatorHandler exposes the tax engine without persisting anything.
type CalculatorHandler struct {
	calculatorService service.CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(calculatorService service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorService: calculatorService}
}

// Preview handles POST /api/v1/gst/preview
// @Summary Preview bill totals
// @Description Compute line amounts, CGST/SGST/IGST, grand total and amount in words for a draft bill
// @Tags gst
// @Accept json
// @Produce json
// @Param request body service.PreviewInput true "Draft items and tax settings"
// @Success 200 {object} APIResponse{data=service.PreviewResult} "Computed totals"
// @Failure 400 {object} APIResponse "Invalid tax regime or request body"
// @Router /gst/preview [post]
func (h *CalculatorHandler) Preview(c *gin.Context) {
	var input service.PreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calculatorService.Preview(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// AmountInWords handles POST /api/v1/gst/amount-in-words
// @Summary Amount in words
// @Description Render a rupee amount in Indian-system English words
// @Tags gst
// @Accept json
// @Produce json
// @Param request body AmountInWordsRequest true "Amount"
// @Success 200 {object} APIResponse{data=AmountInWordsResponse} "Amount in words"
// @Failure 400 {object} APIResponse "Negative, non-numeric or too large amount"
// @Router /gst/amount-in-words [post]
func (h *CalculatorHandler) AmountInWords(c *gin.Context) {
	var req AmountInWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	words, err := h.calculatorService.AmountInWords(string(req.Amount))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, AmountInWordsResponse{Amount: string(req.Amount), Words: words})
}
