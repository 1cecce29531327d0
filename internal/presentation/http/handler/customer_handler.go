package handler

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/request"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	invoiceService  *service.InvoiceService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, invoiceService *service.InvoiceService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, invoiceService: invoiceService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &repository.CustomerFilterParams{
		Pagination: pageParams(filter.Page, filter.PageSize),
		Search:     filter.Search,
		HasBalance: filter.HasBalance,
		Status:     filter.Status,
		MinBalance: filter.MinBalance,
		MaxBalance: filter.MaxBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer deleted successfully", nil)
}

// Stats returns customer base statistics
func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.customerService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer stats retrieved successfully", stats)
}

// AdjustWallet credits or debits a customer's wallet
func (h *CustomerHandler) AdjustWallet(c *gin.Context) {
	var input service.WalletAdjustInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	customer, err := h.customerService.AdjustWallet(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Wallet updated successfully", customer)
}

// SetBalance overwrites a customer's wallet balance
func (h *CustomerHandler) SetBalance(c *gin.Context) {
	var req request.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	customer, err := h.customerService.SetWalletBalance(c.Request.Context(), c.Param("id"), req.WalletBalance)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Wallet balance updated successfully", customer)
}

// Invoices lists one customer's invoices
func (h *CustomerHandler) Invoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListCustomerInvoices(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer invoices retrieved successfully", invoices)
}
