package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// PrintInvoice sends an invoice receipt to the configured printer
// @Summary Print Invoice
// @Description Print a receipt for an invoice on the configured printer
// @Tags printer
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/print [post]
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.printerService.PrintInvoice(c.Request.Context(), invoiceID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// PreviewInvoice returns the raw receipt bytes without printing
// @Summary Preview Invoice Receipt
// @Description Render the receipt for an invoice without printing it
// @Tags printer
// @Security BearerAuth
// @Produce octet-stream
// @Param id path string true "Invoice ID"
// @Success 200
// @Router /invoices/{id}/receipt [get]
func (h *PrinterHandler) PreviewInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, err := h.printerService.RenderInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "application/octet-stream", data)
}

// TestPrint prints a short test receipt
// @Summary Test Print
// @Description Print a test receipt to verify printer connectivity
// @Tags printer
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /printer/test [post]
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test receipt printed", nil)
}
