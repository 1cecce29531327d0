package handler

import (
	"net/http"
	"strconv"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/middleware"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// currentSession returns the request's session, answering 401 when there is none.
func currentSession(c *gin.Context) (*entity.Session, bool) {
	session := middleware.GetSession(c)
	if session == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	return session, true
}

// cashierName is printed on receipts composed by staff.
func cashierName(c *gin.Context) string {
	if session := middleware.GetSession(c); session != nil {
		return session.User.Name
	}
	return ""
}

func pageParams(page, pageSize int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PageSize: pageSize}
}

// intQuery reads an optional integer query parameter; absent means zero.
func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+key+" parameter")
		return 0, false
	}
	return n, true
}

// writeReceipt renders r as the printable HTML page or, when pdf is set, as
// a PDF named after the invoice.
func writeReceipt(c *gin.Context, receipts *service.ReceiptService, r *entity.Receipt, pdf bool) {
	if !pdf {
		body, err := receipts.RenderHTML(r)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.HTML(c, body)
		return
	}

	body, err := receipts.RenderPDF(r)
	if err != nil {
		response.Error(c, err)
		return
	}
	name := r.InvoiceNo
	if name == "" {
		name = "receipt"
	}
	c.Header("Content-Disposition", `inline; filename="`+name+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
