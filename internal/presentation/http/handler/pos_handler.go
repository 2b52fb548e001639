package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/request"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
)

// POSHandler handles register-facing HTTP requests: cart building,
// settlement, refunds and transfers
type POSHandler struct {
	posService *service.POSService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(posService *service.POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

func (h *POSHandler) register(c *gin.Context) (string, bool) {
	register := c.Param("register")
	if register == "" {
		response.BadRequest(c, "Register identifier is required")
		return "", false
	}
	return register, true
}

func (h *POSHandler) settleInput(c *gin.Context, req *request.SettleRequest) *service.SettleInput {
	return &service.SettleInput{
		CustomerID:      req.CustomerID,
		SalesCategoryID: req.SalesCategoryID,
		UserID:          GetUserID(c),
		Notes:           req.Notes,
	}
}

// GetCart returns the current register cart
// @Summary Get Cart
// @Description Get the current cart state for a register
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Param register path string true "Register ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart [get]
func (h *POSHandler) GetCart(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	response.OK(c, "Cart retrieved successfully", h.posService.GetCart(register))
}

// AddProduct adds a product to the register cart
// @Summary Add Product
// @Description Add a product to the cart, merging with an existing line
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.AddProductRequest true "Product to add"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart/items [post]
func (h *POSHandler) AddProduct(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.AddProduct(c.Request.Context(), register, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", view)
}

// AddByBarcode adds a product to the cart by barcode scan
// @Summary Add By Barcode
// @Description Add a product to the cart by its barcode
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.AddByBarcodeRequest true "Barcode"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart/barcode [post]
func (h *POSHandler) AddByBarcode(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.AddByBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.AddProductByBarcode(c.Request.Context(), register, req.Barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", view)
}

// UpdateQuantity sets the quantity on a cart line
// @Summary Update Quantity
// @Description Set the quantity of a cart line; zero removes the line
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.UpdateQuantityRequest true "Line index and quantity"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart/items [put]
func (h *POSHandler) UpdateQuantity(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.UpdateQuantity(register, req.Index, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", view)
}

// RemoveLine removes a cart line
// @Summary Remove Line
// @Description Remove a cart line by index
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.RemoveLineRequest true "Line index"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart/items [delete]
func (h *POSHandler) RemoveLine(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.RemoveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.RemoveLine(register, req.Index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed", view)
}

// ResetCart clears the register cart
// @Summary Reset Cart
// @Description Discard the cart and pending payments and return to idle
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Param register path string true "Register ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/cart [delete]
func (h *POSHandler) ResetCart(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	view, err := h.posService.ResetCart(register)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart reset", view)
}

// AddPaymentEntry adds a tender to a pending split settlement
// @Summary Add Payment Entry
// @Description Add a tender to the pending split payment list
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.AddPaymentEntryRequest true "Payment entry"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/payments [post]
func (h *POSHandler) AddPaymentEntry(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.AddPaymentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.AddPaymentEntry(c.Request.Context(), register, req.PaymentTypeID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment entry added", view)
}

// RemovePaymentEntry removes a pending tender
// @Summary Remove Payment Entry
// @Description Remove a pending tender by index
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param request body request.RemovePaymentEntryRequest true "Entry index"
// @Success 200 {object} response.APIResponse
// @Router /pos/{register}/payments [delete]
func (h *POSHandler) RemovePaymentEntry(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.RemovePaymentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.RemovePaymentEntry(register, req.Index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment entry removed", view)
}

// DirectSale settles the cart in one step with a single payment
// @Summary Direct Sale
// @Description Settle the cart with a single full payment and issue an invoice
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.SettleRequest false "Settlement context"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/{register}/sale [post]
func (h *POSHandler) DirectSale(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	// The settlement context is optional; an empty body means cash sale
	// to the walk-in customer
	var req request.SettleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	invoice, err := h.posService.DirectSale(c.Request.Context(), register, req.PaymentTypeID, h.settleInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", gin.H{"invoice": invoice})
}

// BeginSplit opens a split settlement for the register cart
// @Summary Begin Split
// @Description Create a draft invoice for the cart and start taking payment allocations
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.SettleRequest false "Settlement context"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/{register}/split [post]
func (h *POSHandler) BeginSplit(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.SettleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	view, err := h.posService.BeginSplit(c.Request.Context(), register, h.settleInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Split settlement opened", view)
}

// ProcessSplit finalizes the open split settlement
// @Summary Process Split
// @Description Record the queued payment allocations against the draft invoice and close the split
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.SettleRequest false "Settlement context"
// @Success 201 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /pos/{register}/settle [post]
func (h *POSHandler) ProcessSplit(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.SettleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	invoice, err := h.posService.ProcessSplit(c.Request.Context(), register, h.settleInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", gin.H{"invoice": invoice})
}

// RefundCart settles the current cart as a refund
// @Summary Refund Cart
// @Description Settle the current cart as a refund with negated amounts
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.RefundCartRequest true "Refund context"
// @Success 201 {object} response.APIResponse
// @Router /pos/{register}/refund [post]
func (h *POSHandler) RefundCart(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.RefundCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.posService.RefundCart(c.Request.Context(), register, req.Reason, req.PaymentTypeID, h.settleInput(c, &req.SettleRequest))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund completed", gin.H{"invoice": invoice})
}

// RefundInvoice refunds a previously settled invoice in full
// @Summary Refund Invoice
// @Description Mark a paid invoice and all its payments as refunded
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.RefundInvoiceRequest true "Refund reason"
// @Success 201 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /invoices/{id}/refund [post]
func (h *POSHandler) RefundInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.RefundInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.posService.RefundInvoice(c.Request.Context(), invoiceID, req.Reason, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund completed", gin.H{"invoice": invoice})
}

// Transfer moves the cart onto an existing open invoice
// @Summary Transfer
// @Description Move the current cart onto an open invoice without taking payment
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param register path string true "Register ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.TransferRequest true "Transfer context"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pos/{register}/transfer [post]
func (h *POSHandler) Transfer(c *gin.Context) {
	register, ok := h.register(c)
	if !ok {
		return
	}

	var req request.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := h.settleInput(c, &req.SettleRequest)
	if req.TableNumber != "" {
		input.TableNumber = &req.TableNumber
	}

	invoice, err := h.posService.Transfer(c.Request.Context(), register, req.TargetInvoiceID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ticket transferred", gin.H{"invoice": invoice})
}
