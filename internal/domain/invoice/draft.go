package invoice

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Mode distinguishes a new invoice from an edit of a saved one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// CustomerSnapshot is the customer view cached when the customer was selected.
type CustomerSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

// SnapshotCustomer copies the fields a draft needs from c.
func SnapshotCustomer(c entity.Customer) *CustomerSnapshot {
	return &CustomerSnapshot{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		WalletBalance: c.WalletBalance,
	}
}

// Draft is an invoice under composition, owned by one session. Callers must
// hold the draft lock around every read or mutation.
type Draft struct {
	mu sync.Mutex

	ID        string
	SessionID string
	Mode      Mode
	InvoiceID string

	Customer      *CustomerSnapshot
	Discount      decimal.Decimal
	DiscountType  enum.DiscountType
	WalletPayment decimal.Decimal
	WalletAdd     decimal.Decimal
	Status        enum.InvoiceStatus
	Notes         string

	Cart *Cart
	// Original holds per-product quantities of the saved invoice at open time.
	Original map[string]int

	submission Submission
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDraft creates an empty create-mode draft.
func NewDraft(sessionID string, catalog Catalog, merge bool) *Draft {
	now := time.Now()
	return &Draft{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		Mode:         ModeCreate,
		DiscountType: enum.DiscountTypePercentage,
		Status:       enum.InvoiceStatusPending,
		Cart:         NewCart(catalog, merge),
		submission:   NewSubmission(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewEditDraft opens a saved invoice for editing. Product names are taken
// from the catalog when the invoice items do not carry them.
func NewEditDraft(sessionID string, inv *entity.Invoice, customer *entity.Customer, catalog Catalog, merge bool) *Draft {
	d := NewDraft(sessionID, catalog, merge)
	d.Mode = ModeEdit
	d.InvoiceID = inv.ID
	d.Discount = inv.Discount
	d.DiscountType = inv.DiscountType.OrDefault()
	d.WalletAdd = inv.WalletAdd
	d.Status = inv.Status
	if inv.Notes != nil {
		d.Notes = *inv.Notes
	}
	if customer != nil {
		d.Customer = SnapshotCustomer(*customer)
	} else {
		d.Customer = &CustomerSnapshot{ID: inv.CustomerID, Name: inv.CustomerName}
	}

	lines := lo.Map(inv.Items, func(item entity.InvoiceItem, _ int) LineItem {
		name := item.ProductName
		if entry, ok := catalog.Lookup(item.ProductID); ok && name == "" {
			name = entry.Name
		}
		return LineItem{
			InvoiceItemID: item.ID,
			ProductID:     item.ProductID,
			ProductName:   name,
			Quantity:      item.Quantity,
			UnitPrice:     item.Price,
		}
	})
	d.Cart.Load(lines)
	d.Original = inv.QuantityByProduct()
	d.Cart.Reserve(d.Original)
	d.WalletPayment = ClampWalletPayment(inv.WalletPayment, d.Totals().Total)
	return d
}

func (d *Draft) Lock()   { d.mu.Lock() }
func (d *Draft) Unlock() { d.mu.Unlock() }

// Submission exposes the flow state.
func (d *Draft) Submission() *Submission { return &d.submission }

// Totals recomputes the money summary.
func (d *Draft) Totals() Totals {
	return CalculateTotals(d.Cart.Items(), d.Discount, d.DiscountType, d.WalletPayment, d.WalletAdd)
}

// Mutate runs fn as a draft edit. It returns the draft to Editing after a
// failed submission, refuses edits while submitting, and re-applies the
// wallet clamp since totals may have moved.
func (d *Draft) Mutate(fn func() (Notice, error)) (Notice, error) {
	if err := d.submission.Edit(); err != nil {
		return Notice{}, err
	}
	notice, err := fn()
	if err != nil {
		return Notice{}, err
	}
	d.WalletPayment = ClampWalletPayment(d.WalletPayment, d.Totals().Total)
	d.UpdatedAt = time.Now()
	return notice, nil
}

// AddProduct adds one unit of the product.
func (d *Draft) AddProduct(entry CatalogEntry) (Notice, error) {
	return d.Mutate(func() (Notice, error) { return d.Cart.AddProduct(entry) })
}

// SetQuantity sets a product's quantity.
func (d *Draft) SetQuantity(productID string, qty int) (Notice, error) {
	return d.Mutate(func() (Notice, error) { return d.Cart.SetQuantity(productID, qty) })
}

// RemoveLine drops a line.
func (d *Draft) RemoveLine(lineID string) (Notice, error) {
	return d.Mutate(func() (Notice, error) { return d.Cart.RemoveLine(lineID) })
}

// SelectCustomer replaces the selected customer. The wallet payment is
// re-clamped against the new customer's balance.
func (d *Draft) SelectCustomer(c *CustomerSnapshot) (Notice, error) {
	return d.Mutate(func() (Notice, error) {
		d.Customer = c
		if c == nil {
			d.WalletPayment = decimal.Zero
			return info("Customer cleared"), nil
		}
		if d.WalletPayment.GreaterThan(c.WalletBalance) {
			d.WalletPayment = decimal.Max(c.WalletBalance, decimal.Zero)
		}
		return success(c.Name + " selected"), nil
	})
}

// Payment carries the editable money inputs of a draft. Nil fields are left unchanged.
type Payment struct {
	Discount      *decimal.Decimal
	DiscountType  *enum.DiscountType
	WalletPayment *decimal.Decimal
	WalletAdd     *decimal.Decimal
	Status        *enum.InvoiceStatus
	Notes         *string
}

// ApplyPayment updates discount, wallet and status inputs. Inputs are checked
// before anything changes. The wallet payment is clamped into [0, total] as it
// is entered.
func (d *Draft) ApplyPayment(p Payment) (Notice, error) {
	return d.Mutate(func() (Notice, error) {
		kind := d.DiscountType
		if p.DiscountType != nil {
			kind = *p.DiscountType
		}
		discount := d.Discount
		if p.Discount != nil {
			discount = *p.Discount
		}

		var fieldErrors []apperror.FieldError
		if !kind.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_type", Message: "must be percentage or fixed"})
		}
		if discount.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "cannot be negative"})
		} else if kind == enum.DiscountTypePercentage && discount.GreaterThan(hundred) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "percentage cannot exceed 100"})
		}
		if p.Status != nil && !p.Status.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "must be Paid, Pending or Partial"})
		}
		if len(fieldErrors) > 0 {
			return Notice{}, apperror.NewValidationError(fieldErrors)
		}

		d.DiscountType = kind
		d.Discount = discount
		if p.WalletAdd != nil {
			d.WalletAdd = ClampWalletAdd(*p.WalletAdd)
		}
		if p.WalletPayment != nil {
			d.WalletPayment = ClampWalletPayment(*p.WalletPayment, d.Totals().Total)
		}
		if p.Status != nil {
			d.Status = *p.Status
		}
		if p.Notes != nil {
			d.Notes = strings.TrimSpace(*p.Notes)
		}
		return info("Invoice updated"), nil
	})
}

// Validate checks the draft before any network call, in the order the
// cashier would fix things: customer, wallet, items.
func (d *Draft) Validate() error {
	if d.Customer == nil || d.Customer.ID == "" {
		return apperror.NewRuleError("Select a customer first")
	}

	totals := d.Totals()
	if totals.WalletPayment.GreaterThan(d.Customer.WalletBalance) {
		return apperror.NewRuleError("Wallet payment exceeds the customer's wallet balance")
	}

	items := d.Cart.Items()
	if len(items) == 0 {
		return apperror.NewRuleError("Add at least one product to the invoice")
	}

	var fieldErrors []apperror.FieldError
	quantities := d.Cart.QuantityByProduct()
	productIDs := lo.Keys(quantities)
	sort.Strings(productIDs)
	for _, productID := range productIDs {
		qty := quantities[productID]
		entry, ok := d.Cart.Catalog().Lookup(productID)
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: productID, Message: "product no longer exists"})
			continue
		}
		if available := d.Cart.Available(productID); qty > available {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: productID, Message: stockError(entry.Name, available).Error()})
		}
	}
	for _, l := range items {
		if l.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: l.ID, Message: "quantity must be greater than zero"})
		}
		if !l.UnitPrice.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: l.ID, Message: "price must be greater than zero"})
		}
	}
	if len(fieldErrors) > 0 {
		err := apperror.NewValidationError(fieldErrors)
		err.Message = fieldErrors[0].Message
		return err
	}
	return nil
}

// Input builds the backend payload. Edit drafts keep backend item ids.
func (d *Draft) Input() entity.InvoiceInput {
	totals := d.Totals()
	var notes *string
	if d.Notes != "" {
		n := d.Notes
		notes = &n
	}
	customerID := ""
	if d.Customer != nil {
		customerID = d.Customer.ID
	}
	return entity.InvoiceInput{
		CustomerID:    customerID,
		Status:        d.Status,
		Notes:         notes,
		WalletPayment: totals.WalletPayment,
		WalletAdd:     totals.WalletAdd,
		Discount:      d.Discount,
		DiscountType:  d.DiscountType,
		Items: lo.Map(d.Cart.Items(), func(l LineItem, _ int) entity.InvoiceItemInput {
			return entity.InvoiceItemInput{
				ID:        l.InvoiceItemID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.UnitPrice,
			}
		}),
	}
}

// StockPlan lists the stock writes a successful submission triggers.
func (d *Draft) StockPlan() ([]StockChange, []string) {
	if d.Mode == ModeEdit {
		return PlanEdit(d.Original, d.Cart.QuantityByProduct(), d.Cart.Catalog())
	}
	return PlanCreate(d.Cart.QuantityByProduct(), d.Cart.Catalog())
}

// View is the JSON rendition of a draft.
type View struct {
	ID           string             `json:"id"`
	Mode         Mode               `json:"mode"`
	InvoiceID    string             `json:"invoice_id,omitempty"`
	Customer     *CustomerSnapshot  `json:"customer,omitempty"`
	Items        []LineItem         `json:"items"`
	Totals       Totals             `json:"totals"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType enum.DiscountType  `json:"discount_type"`
	Status       enum.InvoiceStatus `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Merge        bool               `json:"merge"`
	State        State              `json:"state"`
	LastError    string             `json:"last_error,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// View snapshots the draft for rendering.
func (d *Draft) View() View {
	return View{
		ID:           d.ID,
		Mode:         d.Mode,
		InvoiceID:    d.InvoiceID,
		Customer:     d.Customer,
		Items:        d.Cart.Items(),
		Totals:       d.Totals(),
		Discount:     d.Discount,
		DiscountType: d.DiscountType,
		Status:       d.Status,
		Notes:        d.Notes,
		Merge:        d.Cart.Merge(),
		State:        d.submission.State(),
		LastError:    d.submission.LastError(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
