package handler

import (
	"net/http"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/request"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	receiptService *service.ReceiptService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, receiptService *service.ReceiptService) *ProductHandler {
	return &ProductHandler{productService: productService, receiptService: receiptService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination:   pageParams(filter.Page, filter.PageSize),
		CategoryID:   filter.CategoryID,
		Search:       filter.Search,
		MinPrice:     filter.MinPrice,
		MaxPrice:     filter.MaxPrice,
		InStockOnly:  filter.InStockOnly,
		LowStockOnly: filter.LowStockOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// GetByCode handles a product lookup by its printed product code (QR scan)
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// SetStock overwrites a product's stock
func (h *ProductHandler) SetStock(c *gin.Context) {
	var req request.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	product, err := h.productService.SetStock(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock updated successfully", product)
}

// LowStock lists products at or below the threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	var req request.LowStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	products, err := h.productService.LowStock(c.Request.Context(), req.Threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", products)
}

// ExportInventory streams the backend's inventory export
func (h *ProductHandler) ExportInventory(c *gin.Context) {
	export, err := h.productService.ExportInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, export.Filename, export.ContentType, export.Body)
}

// Label renders a product's shelf label as HTML, or as PDF with ?format=pdf
func (h *ProductHandler) Label(c *gin.Context) {
	label, err := h.receiptService.ProductLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") != "pdf" {
		body, err := h.receiptService.RenderLabelHTML(label)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.HTML(c, body)
		return
	}

	body, err := h.receiptService.RenderLabelPDF(label)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="label-`+label.ProductID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

// PrintLabel prints copies of a product's shelf label on the thermal printer
func (h *ProductHandler) PrintLabel(c *gin.Context) {
	var req request.PrintLabelRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if req.Copies == 0 {
		req.Copies = 1
	}

	label, err := h.receiptService.ProductLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.receiptService.PrintLabel(c.Request.Context(), label, req.Copies); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Label printed successfully", gin.H{"label": label, "copies": req.Copies})
}
