package handler

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PortalHandler serves the customer portal: a customer's own profile,
// invoices and receipts.
type PortalHandler struct {
	portalService  *service.PortalService
	receiptService *service.ReceiptService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(portalService *service.PortalService, receiptService *service.ReceiptService) *PortalHandler {
	return &PortalHandler{portalService: portalService, receiptService: receiptService}
}

// Profile returns the logged-in customer
func (h *PortalHandler) Profile(c *gin.Context) {
	customer, err := h.portalService.Profile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", customer)
}

// Invoices lists the logged-in customer's invoices, newest first
func (h *PortalHandler) Invoices(c *gin.Context) {
	invoices, err := h.portalService.Invoices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Invoice returns one of the customer's invoices
func (h *PortalHandler) Invoice(c *gin.Context) {
	inv, err := h.portalService.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", inv)
}

// Receipt renders the receipt of one of the customer's invoices
func (h *PortalHandler) Receipt(c *gin.Context) {
	h.receipt(c, false)
}

// ReceiptPDF renders the receipt as a PDF
func (h *PortalHandler) ReceiptPDF(c *gin.Context) {
	h.receipt(c, true)
}

func (h *PortalHandler) receipt(c *gin.Context, pdf bool) {
	r, err := h.portalService.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeReceipt(c, h.receiptService, r, pdf)
}
