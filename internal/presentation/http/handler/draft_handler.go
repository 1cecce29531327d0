package handler

import (
	"net/http"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/request"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// DraftHandler handles the invoice composer: the cart, payment inputs and submission
type DraftHandler struct {
	draftService   *service.DraftService
	receiptService *service.ReceiptService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService, receiptService *service.ReceiptService) *DraftHandler {
	return &DraftHandler{draftService: draftService, receiptService: receiptService}
}

// Create opens a new empty draft
func (h *DraftHandler) Create(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	view, err := h.draftService.CreateDraft(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Draft created successfully", view)
}

// List lists the session's drafts
func (h *DraftHandler) List(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	views, err := h.draftService.ListDrafts(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Drafts retrieved successfully", views)
}

// Get returns one draft
func (h *DraftHandler) Get(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	view, err := h.draftService.GetDraft(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved successfully", view)
}

// Delete discards a draft
func (h *DraftHandler) Delete(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.draftService.DeleteDraft(c.Request.Context(), session, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft deleted successfully", nil)
}

// AddItem adds a product by id or scanned product code
func (h *DraftHandler) AddItem(c *gin.Context) {
	var input service.AddProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.AddProduct(c.Request.Context(), s.session, s.id, &input)
	})
}

// SetQuantity sets a line's quantity; zero removes it
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: quantity is required")
		return
	}
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.SetQuantity(c.Request.Context(), s.session, s.id, c.Param("productId"), *req.Quantity)
	})
}

// RemoveLine removes one line
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.RemoveLine(c.Request.Context(), s.session, s.id, c.Param("lineId"))
	})
}

// SelectCustomer picks or clears the draft's customer
func (h *DraftHandler) SelectCustomer(c *gin.Context) {
	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.SelectCustomer(c.Request.Context(), s.session, s.id, req.CustomerID)
	})
}

// Payment updates discount, wallet, status and notes
func (h *DraftHandler) Payment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	payment := invoice.Payment{
		Discount:      req.Discount,
		WalletPayment: req.WalletPayment,
		WalletAdd:     req.WalletAdd,
		Notes:         req.Notes,
	}
	if req.DiscountType != nil {
		payment.DiscountType = lo.ToPtr(enum.DiscountType(*req.DiscountType))
	}
	if req.Status != nil {
		payment.Status = lo.ToPtr(enum.InvoiceStatus(*req.Status))
	}
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.ApplyPayment(c.Request.Context(), s.session, s.id, payment)
	})
}

// SetMerge toggles merging of repeated products
func (h *DraftHandler) SetMerge(c *gin.Context) {
	var req request.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: merge is required")
		return
	}
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.SetMerge(c.Request.Context(), s.session, s.id, *req.Merge)
	})
}

// Refresh reloads the draft's catalog and customer from the backend
func (h *DraftHandler) Refresh(c *gin.Context) {
	h.mutate(c, func(s draftRef) (*service.DraftResult, error) {
		return h.draftService.RefreshCatalog(c.Request.Context(), s.session, s.id)
	})
}

// Search filters the draft's catalog
func (h *DraftHandler) Search(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var req request.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	entries, err := h.draftService.Search(c.Request.Context(), session, c.Param("id"), req.Query, req.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", entries)
}

// Submit saves the draft as an invoice. A saved invoice whose stock could not
// be fully updated answers 201 with a warning.
func (h *DraftHandler) Submit(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := h.draftService.Submit(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Outcome == service.SubmitPartial {
		response.SuccessWithWarning(c, http.StatusCreated, "Invoice saved", result.Warning(), result)
		return
	}
	response.Created(c, "Invoice saved successfully", result)
}

// Receipt previews the draft's receipt as HTML
func (h *DraftHandler) Receipt(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	d, err := h.draftService.Draft(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeReceipt(c, h.receiptService, h.receiptService.FromDraft(d, session.User.Name), c.Query("format") == "pdf")
}

// Print sends the draft's receipt to the thermal printer
func (h *DraftHandler) Print(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	d, err := h.draftService.Draft(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	r := h.receiptService.FromDraft(d, session.User.Name)
	if err := h.receiptService.Print(c.Request.Context(), r); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", r)
}

func (h *DraftHandler) mutate(c *gin.Context, fn func(draftRef) (*service.DraftResult, error)) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := fn(draftRef{session: session, id: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft updated", result)
}

// draftRef names the draft a mutation applies to.
type draftRef struct {
	session *entity.Session
	id      string
}
