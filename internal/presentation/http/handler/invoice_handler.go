package handler

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/request"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles saved-invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	draftService   *service.DraftService
	receiptService *service.ReceiptService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, draftService *service.DraftService, receiptService *service.ReceiptService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		draftService:   draftService,
		receiptService: receiptService,
	}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &repository.InvoiceFilterParams{
		Pagination: pageParams(filter.Page, filter.PageSize),
		CustomerID: filter.CustomerID,
		Status:     enum.InvoiceStatus(filter.Status),
		MinTotal:   filter.MinTotal,
		MaxTotal:   filter.MaxTotal,
		MinDate:    filter.MinDate,
		MaxDate:    filter.MaxDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", inv)
}

// Stats returns invoice statistics
func (h *InvoiceHandler) Stats(c *gin.Context) {
	stats, err := h.invoiceService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice stats retrieved successfully", stats)
}

// UpdateStatus changes an invoice's status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request: status is required")
		return
	}
	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), c.Param("id"), enum.InvoiceStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice status updated successfully", inv)
}

// MarkPaid marks an invoice as paid
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	inv, err := h.invoiceService.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice marked as paid", inv)
}

// Delete deletes an unpaid invoice and returns its items to stock
func (h *InvoiceHandler) Delete(c *gin.Context) {
	result, err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if warning := result.Warning(); warning != "" {
		response.SuccessWithWarning(c, 200, "Invoice deleted", warning, result)
		return
	}
	response.OK(c, "Invoice deleted successfully", result)
}

// Edit opens a saved invoice as an edit draft
func (h *InvoiceHandler) Edit(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	view, err := h.draftService.OpenEdit(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice opened for editing", view)
}

// Receipt renders the printable HTML receipt of an invoice
func (h *InvoiceHandler) Receipt(c *gin.Context) {
	h.receipt(c, false)
}

// ReceiptPDF renders the receipt of an invoice as a PDF
func (h *InvoiceHandler) ReceiptPDF(c *gin.Context) {
	h.receipt(c, true)
}

func (h *InvoiceHandler) receipt(c *gin.Context, pdf bool) {
	r, err := h.receiptService.InvoiceReceipt(c.Request.Context(), c.Param("id"), cashierName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeReceipt(c, h.receiptService, r, pdf)
}

// Print sends an invoice's receipt to the thermal printer
func (h *InvoiceHandler) Print(c *gin.Context) {
	r, err := h.receiptService.InvoiceReceipt(c.Request.Context(), c.Param("id"), cashierName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.receiptService.Print(c.Request.Context(), r); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", r)
}
