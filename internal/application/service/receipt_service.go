package service

import (
	"context"
	"fmt"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/receipt"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/printer"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/utils"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// StoreInfo is the branding printed on every receipt.
type StoreInfo struct {
	Header     entity.ReceiptHeader
	Currency   string
	Footer     string
	WebsiteURL string
	CharWidth  int
}

// ReceiptService composes receipts and renders them as HTML, PDF or ESC/POS.
type ReceiptService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	printer      printer.Printer
	store        StoreInfo
	log          *zap.Logger
	now          func() time.Time
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	p printer.Printer,
	store StoreInfo,
	log *zap.Logger,
) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		printer:      p,
		store:        store,
		log:          log,
		now:          time.Now,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Connected:  s.printer.IsConnected(),
		Type:       s.printer.Kind(),
	}
}

// TestPrint sends a sample receipt to the printer and returns it.
func (s *ReceiptService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	price := decimal.NewFromInt(10)
	r := s.base()
	r.InvoiceNo = "TEST-001"
	r.Cashier = "System"
	r.Customer = entity.ReceiptCustomer{Name: "Printer test"}
	r.Items = []entity.ReceiptItem{
		{Name: "Test item 1", Quantity: 1, UnitPrice: price, Total: price},
		{Name: "Test item 2", Quantity: 2, UnitPrice: price.Div(decimal.NewFromInt(2)), Total: price},
	}
	r.SubTotal = price.Mul(decimal.NewFromInt(2))
	r.Total = r.SubTotal
	r.GrandTotal = r.SubTotal

	if err := s.Print(ctx, r); err != nil {
		return r, err
	}
	return r, nil
}

// InvoiceReceipt builds the receipt of a saved invoice. Product names and the
// customer's current wallet balance are looked up; lookups that fail fall
// back to what the invoice carries.
func (s *ReceiptService) InvoiceReceipt(ctx context.Context, invoiceID, cashier string) (*entity.Receipt, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		s.log.Warn("receipt customer lookup failed", zap.String("customer_id", inv.CustomerID), zap.Error(err))
		customer = nil
	}
	return s.FromInvoice(ctx, inv, customer, cashier), nil
}

// CustomerReceipt builds the receipt of one of the logged-in customer's own invoices.
func (s *ReceiptService) CustomerReceipt(ctx context.Context, invoiceID string) (*entity.Receipt, error) {
	me, err := s.customerRepo.Me(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetForCustomer(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID != me.ID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.FromInvoice(ctx, inv, me, ""), nil
}

// FromInvoice composes a receipt from a saved invoice.
func (s *ReceiptService) FromInvoice(ctx context.Context, inv *entity.Invoice, customer *entity.Customer, cashier string) *entity.Receipt {
	names := s.productNames(ctx, inv.Items)
	totals := invoice.InvoiceTotals(inv)

	r := s.base()
	r.InvoiceNo = utils.ReceiptNo(inv.ID)
	r.IssuedAt = inv.CreatedAt.Time
	r.Cashier = cashier
	r.Status = inv.Status.String()
	if inv.Notes != nil {
		r.Notes = *inv.Notes
	}
	r.Customer = entity.ReceiptCustomer{Name: inv.CustomerName}
	if customer != nil {
		r.Customer = entity.ReceiptCustomer{Name: customer.Name, Phone: customer.Phone, WalletBalance: customer.WalletBalance}
	}
	r.Items = lo.Map(inv.Items, func(item entity.InvoiceItem, _ int) entity.ReceiptItem {
		return entity.ReceiptItem{
			Name:      names[item.ProductID],
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Total:     item.LineTotal(),
		}
	})
	s.applyTotals(r, totals, inv.Discount, inv.DiscountType)
	return r
}

// FromDraft composes a preview receipt of a draft.
func (s *ReceiptService) FromDraft(d *invoice.Draft, cashier string) *entity.Receipt {
	d.Lock()
	defer d.Unlock()
	totals := d.Totals()

	r := s.base()
	if d.InvoiceID != "" {
		r.InvoiceNo = utils.ReceiptNo(d.InvoiceID)
	}
	r.Cashier = cashier
	r.Status = d.Status.String()
	r.Notes = d.Notes
	if d.Customer != nil {
		r.Customer = entity.ReceiptCustomer{Name: d.Customer.Name, Phone: d.Customer.Phone, WalletBalance: d.Customer.WalletBalance}
	}
	r.Items = lo.Map(d.Cart.Items(), func(l invoice.LineItem, _ int) entity.ReceiptItem {
		return entity.ReceiptItem{
			Name:      l.ProductName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.LineTotal,
		}
	})
	s.applyTotals(r, totals, d.Discount, d.DiscountType)
	return r
}

// RenderHTML renders the printable receipt page.
func (s *ReceiptService) RenderHTML(r *entity.Receipt) ([]byte, error) {
	return receipt.RenderHTML(r)
}

// RenderPDF renders the receipt as a PDF document.
func (s *ReceiptService) RenderPDF(r *entity.Receipt) ([]byte, error) {
	return receipt.RenderPDF(r)
}

// Print sends the receipt to the thermal printer.
func (s *ReceiptService) Print(ctx context.Context, r *entity.Receipt) error {
	if s.printer.Kind() == "none" {
		return apperror.NewBadRequestError("No printer is configured")
	}
	if err := s.printer.Print(ctx, receipt.RenderESCPOS(r, s.store.CharWidth)); err != nil {
		s.log.Warn("printer error", zap.String("invoice_no", r.InvoiceNo), zap.Error(err))
		return apperror.NewAppError(502, fmt.Sprintf("Failed to print receipt: %v", err))
	}
	return nil
}

// MaxLabelCopies bounds a single label print job.
const MaxLabelCopies = 50

// ProductLabel builds the shelf label of a product. The label carries the
// printed product code, or the product id when the product has none.
func (s *ReceiptService) ProductLabel(ctx context.Context, productID string) (*entity.ProductLabel, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	code := product.ProductCode
	if code == "" {
		code = product.ID
	}
	return &entity.ProductLabel{
		ProductID: product.ID,
		Code:      code,
		Name:      product.Name,
		Price:     product.UnitPrice(),
		Currency:  s.store.Currency,
		StoreName: s.store.Header.StoreName,
	}, nil
}

// RenderLabelHTML renders the printable label page.
func (s *ReceiptService) RenderLabelHTML(l *entity.ProductLabel) ([]byte, error) {
	return receipt.RenderLabelHTML(l)
}

// RenderLabelPDF renders the label as a PDF document.
func (s *ReceiptService) RenderLabelPDF(l *entity.ProductLabel) ([]byte, error) {
	return receipt.RenderLabelPDF(l)
}

// PrintLabel sends copies of the label to the thermal printer.
func (s *ReceiptService) PrintLabel(ctx context.Context, l *entity.ProductLabel, copies int) error {
	if copies < 1 || copies > MaxLabelCopies {
		return apperror.NewValidationError([]apperror.FieldError{{
			Field:   "copies",
			Message: fmt.Sprintf("must be between 1 and %d", MaxLabelCopies),
		}})
	}
	if s.printer.Kind() == "none" {
		return apperror.NewBadRequestError("No printer is configured")
	}
	if err := s.printer.Print(ctx, receipt.RenderLabelESCPOS(l, s.store.CharWidth, copies)); err != nil {
		s.log.Warn("printer error", zap.String("product_id", l.ProductID), zap.Error(err))
		return apperror.NewAppError(502, fmt.Sprintf("Failed to print label: %v", err))
	}
	return nil
}

func (s *ReceiptService) base() *entity.Receipt {
	return &entity.Receipt{
		Header:   s.store.Header,
		IssuedAt: s.now(),
		Currency: s.store.Currency,
		Footer:   s.store.Footer,
		QRTarget: s.store.WebsiteURL,
	}
}

func (s *ReceiptService) applyTotals(r *entity.Receipt, totals invoice.Totals, discount decimal.Decimal, kind enum.DiscountType) {
	r.SubTotal = totals.Subtotal
	r.Discount = totals.DiscountAmount
	r.DiscountLabel = DiscountLabel(discount, kind, s.store.Currency)
	r.Total = totals.Total
	r.WalletPayment = totals.WalletPayment
	r.WalletAdd = totals.WalletAdd
	r.GrandTotal = totals.Remaining
}

// DiscountLabel renders "(10%)" for percentage discounts and "(10.00 EGP)"
// for fixed ones.
func DiscountLabel(discount decimal.Decimal, kind enum.DiscountType, currency string) string {
	if !discount.IsPositive() {
		return ""
	}
	if kind.OrDefault() == enum.DiscountTypePercentage {
		return "(" + discount.String() + "%)"
	}
	return "(" + receipt.Money(discount, currency) + ")"
}

// productNames resolves item product names, reading products the items do
// not name concurrently. Unknown products print as "Product".
func (s *ReceiptService) productNames(ctx context.Context, items []entity.InvoiceItem) map[string]string {
	names := make(map[string]string, len(items))
	var missing []string
	for _, item := range items {
		if item.ProductName != "" {
			names[item.ProductID] = item.ProductName
		}
	}
	for _, item := range items {
		if _, ok := names[item.ProductID]; !ok && !lo.Contains(missing, item.ProductID) {
			missing = append(missing, item.ProductID)
		}
	}

	if len(missing) > 0 {
		p := pool.NewWithResults[*entity.Product]().WithMaxGoroutines(defaultStockWorkers)
		for _, id := range missing {
			id := id
			p.Go(func() *entity.Product {
				product, err := s.productRepo.GetByID(ctx, id)
				if err != nil {
					return nil
				}
				return product
			})
		}
		for _, product := range p.Wait() {
			if product != nil {
				names[product.ID] = product.Name
			}
		}
	}

	for _, item := range items {
		if names[item.ProductID] == "" {
			names[item.ProductID] = "Product"
		}
	}
	return names
}
