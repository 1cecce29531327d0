package service

import (
	"context"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DraftService composes invoices. Each draft belongs to the session that
// opened it and is guarded by its own lock; backend calls are made outside
// the lock so a slow backend never blocks reads of other drafts.
type DraftService struct {
	draftRepo      repository.DraftRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	invoiceRepo    repository.InvoiceRepository
	products       *ProductService
	invoices       *InvoiceService
	stock          *StockSyncer
	mergeByDefault bool
	log            *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	draftRepo repository.DraftRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	products *ProductService,
	invoices *InvoiceService,
	stock *StockSyncer,
	mergeByDefault bool,
	log *zap.Logger,
) *DraftService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DraftService{
		draftRepo:      draftRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		invoiceRepo:    invoiceRepo,
		products:       products,
		invoices:       invoices,
		stock:          stock,
		mergeByDefault: mergeByDefault,
		log:            log,
	}
}

// DraftResult is a draft after a mutation together with its notification.
type DraftResult struct {
	Draft  invoice.View    `json:"draft"`
	Notice *invoice.Notice `json:"notice,omitempty"`
}

// SubmitOutcome is how far a successful submission got.
type SubmitOutcome string

const (
	SubmitSuccess SubmitOutcome = "success"
	// SubmitPartial means the invoice was saved but some stock writes failed.
	SubmitPartial SubmitOutcome = "partial"
)

// SubmitResult reports a saved invoice and the stock pass that followed.
type SubmitResult struct {
	Outcome SubmitOutcome    `json:"outcome"`
	Invoice *entity.Invoice  `json:"invoice"`
	Draft   invoice.View     `json:"draft"`
	Stock   *StockSyncResult `json:"stock"`
}

// Warning is non-empty for a partial submission.
func (r *SubmitResult) Warning() string {
	return r.Stock.Warning()
}

// CreateDraft opens an empty draft with a fresh catalog.
func (s *DraftService) CreateDraft(ctx context.Context, session *entity.Session) (*invoice.View, error) {
	catalog, err := s.products.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	d := invoice.NewDraft(session.ID, catalog, s.mergeByDefault)
	if err := s.draftRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	view := d.View()
	return &view, nil
}

// OpenEdit loads a saved invoice into a new edit draft. The invoice's
// quantities are snapshotted so the stock pass after saving only writes the
// difference.
func (s *DraftService) OpenEdit(ctx context.Context, session *entity.Session, invoiceID string) (*invoice.View, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	s.invoices.remember(inv)

	customer, err := s.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		s.log.Warn("customer lookup failed for edit draft",
			zap.String("invoice_id", inv.ID),
			zap.String("customer_id", inv.CustomerID),
			zap.Error(err),
		)
		customer = nil
	}

	catalog, err := s.products.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	d := invoice.NewEditDraft(session.ID, inv, customer, catalog, s.mergeByDefault)
	if err := s.draftRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	view := d.View()
	return &view, nil
}

// GetDraft returns a draft owned by session.
func (s *DraftService) GetDraft(ctx context.Context, session *entity.Session, draftID string) (*invoice.View, error) {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	d.Lock()
	defer d.Unlock()
	view := d.View()
	return &view, nil
}

// ListDrafts lists the drafts of a session, oldest first.
func (s *DraftService) ListDrafts(ctx context.Context, session *entity.Session) ([]invoice.View, error) {
	drafts, err := s.draftRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return lo.Map(drafts, func(d *invoice.Draft, _ int) invoice.View {
		d.Lock()
		defer d.Unlock()
		return d.View()
	}), nil
}

// AddProductInput names a product by backend id or by scanned product code.
type AddProductInput struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
}

// AddProduct adds one unit of a product. The product is re-read from the
// backend first so the stock guard sees the latest figure.
func (s *DraftService) AddProduct(ctx context.Context, session *entity.Session, draftID string, input *AddProductInput) (*DraftResult, error) {
	if _, err := s.load(ctx, session, draftID); err != nil {
		return nil, err
	}

	var product *entity.Product
	var err error
	switch {
	case strings.TrimSpace(input.ProductID) != "":
		product, err = s.productRepo.GetByID(ctx, strings.TrimSpace(input.ProductID))
	case strings.TrimSpace(input.Code) != "":
		product, err = s.productRepo.GetByCode(ctx, strings.TrimSpace(input.Code))
	default:
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "product_id", Message: "product_id or code is required"}})
	}
	if err != nil {
		return nil, err
	}

	entry := invoice.EntryFromProduct(*product)
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.AddProduct(entry)
	})
}

// SetQuantity sets a product's quantity; zero or less removes it.
func (s *DraftService) SetQuantity(ctx context.Context, session *entity.Session, draftID, productID string, qty int) (*DraftResult, error) {
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.SetQuantity(productID, qty)
	})
}

// RemoveLine drops one line.
func (s *DraftService) RemoveLine(ctx context.Context, session *entity.Session, draftID, lineID string) (*DraftResult, error) {
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.RemoveLine(lineID)
	})
}

// SelectCustomer selects a customer by id; an empty id clears the selection.
func (s *DraftService) SelectCustomer(ctx context.Context, session *entity.Session, draftID, customerID string) (*DraftResult, error) {
	if _, err := s.load(ctx, session, draftID); err != nil {
		return nil, err
	}

	var snapshot *invoice.CustomerSnapshot
	if customerID = strings.TrimSpace(customerID); customerID != "" {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		snapshot = invoice.SnapshotCustomer(*customer)
	}
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.SelectCustomer(snapshot)
	})
}

// ApplyPayment updates discount, wallet, status and notes.
func (s *DraftService) ApplyPayment(ctx context.Context, session *entity.Session, draftID string, payment invoice.Payment) (*DraftResult, error) {
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.ApplyPayment(payment)
	})
}

// SetMerge toggles whether re-adding a product bumps its existing line.
func (s *DraftService) SetMerge(ctx context.Context, session *entity.Session, draftID string, on bool) (*DraftResult, error) {
	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.Mutate(func() (invoice.Notice, error) {
			d.Cart.SetMerge(on)
			msg := "Repeated products get their own line"
			if on {
				msg = "Repeated products are merged into one line"
			}
			return invoice.Notice{Level: invoice.NoticeInfo, Message: msg}, nil
		})
	})
}

// Search filters the draft's catalog by text and category.
func (s *DraftService) Search(ctx context.Context, session *entity.Session, draftID, term, category string) ([]invoice.CatalogEntry, error) {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	d.Lock()
	defer d.Unlock()
	return d.Cart.Catalog().Search(term, category), nil
}

// RefreshCatalog re-reads products and the selected customer's wallet so the
// draft validates against current figures.
func (s *DraftService) RefreshCatalog(ctx context.Context, session *entity.Session, draftID string) (*DraftResult, error) {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	d.Lock()
	customerID := ""
	if d.Customer != nil {
		customerID = d.Customer.ID
	}
	d.Unlock()

	products, err := s.products.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if customerID != "" {
		if customer, err = s.customerRepo.GetByID(ctx, customerID); err != nil {
			return nil, err
		}
	}

	return s.mutate(ctx, session, draftID, func(d *invoice.Draft) (invoice.Notice, error) {
		return d.Mutate(func() (invoice.Notice, error) {
			d.Cart.Catalog().Refresh(products)
			if customer != nil && d.Customer != nil && d.Customer.ID == customer.ID {
				d.Customer = invoice.SnapshotCustomer(*customer)
			}
			return invoice.Notice{Level: invoice.NoticeInfo, Message: "Products refreshed"}, nil
		})
	})
}

// Submit validates the draft and saves it as an invoice, then writes the
// resulting stock levels. Validation failures never reach the backend. A
// second submit while one is running is refused. Failed stock writes turn
// the outcome partial without undoing the saved invoice.
func (s *DraftService) Submit(ctx context.Context, session *entity.Session, draftID string) (*SubmitResult, error) {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}

	d.Lock()
	flow := d.Submission()
	if err := flow.Begin(); err != nil {
		d.Unlock()
		return nil, err
	}
	if err := d.Validate(); err != nil {
		flow.Fail(err)
		d.Unlock()
		return nil, err
	}
	if err := flow.Submit(); err != nil {
		d.Unlock()
		return nil, err
	}
	input := d.Input()
	changes, unknown := d.StockPlan()
	mode, invoiceID := d.Mode, d.InvoiceID
	d.Unlock()

	var inv *entity.Invoice
	if mode == invoice.ModeEdit {
		inv, err = s.invoiceRepo.Update(ctx, invoiceID, &input)
	} else {
		inv, err = s.invoiceRepo.Create(ctx, &input)
	}

	d.Lock()
	if err != nil {
		flow.Fail(err)
		d.Unlock()
		s.log.Warn("invoice submission failed", zap.String("draft_id", draftID), zap.Error(err))
		return nil, err
	}
	if err := flow.Succeed(); err != nil {
		s.log.Error("invoice saved but draft state could not advance",
			zap.String("draft_id", draftID),
			zap.String("invoice_id", inv.ID),
			zap.String("state", string(flow.State())),
			zap.Error(err),
		)
	}
	d.InvoiceID = inv.ID
	view := d.View()
	d.Unlock()

	s.invoices.remember(inv)
	if err := s.draftRepo.Save(ctx, d); err != nil {
		s.log.Warn("failed to keep submitted draft", zap.String("draft_id", draftID), zap.Error(err))
	}

	result := &SubmitResult{
		Outcome: SubmitSuccess,
		Invoice: inv,
		Draft:   view,
		Stock:   s.stock.Apply(ctx, changes, unknown),
	}
	if !result.Stock.OK() {
		result.Outcome = SubmitPartial
	}
	s.log.Info("invoice submitted",
		zap.String("draft_id", draftID),
		zap.String("invoice_id", inv.ID),
		zap.String("mode", string(mode)),
		zap.String("outcome", string(result.Outcome)),
	)
	return result, nil
}

// DeleteDraft discards a draft. A draft being submitted cannot be discarded.
func (s *DraftService) DeleteDraft(ctx context.Context, session *entity.Session, draftID string) error {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return err
	}
	d.Lock()
	state := d.Submission().State()
	d.Unlock()
	if state == invoice.StateSubmitting || state == invoice.StateValidating {
		return apperror.ErrSubmitInProgress
	}
	return s.draftRepo.Delete(ctx, draftID)
}

// Draft returns the draft itself for callers that render it, such as receipts.
func (s *DraftService) Draft(ctx context.Context, session *entity.Session, draftID string) (*invoice.Draft, error) {
	return s.load(ctx, session, draftID)
}

// load fetches a draft and hides drafts of other sessions.
func (s *DraftService) load(ctx context.Context, session *entity.Session, draftID string) (*invoice.Draft, error) {
	d, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.SessionID != session.ID {
		return nil, apperror.NewNotFoundError("Invoice draft")
	}
	return d, nil
}

func (s *DraftService) mutate(ctx context.Context, session *entity.Session, draftID string, fn func(d *invoice.Draft) (invoice.Notice, error)) (*DraftResult, error) {
	d, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}

	d.Lock()
	notice, err := fn(d)
	view := d.View()
	d.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.draftRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return &DraftResult{Draft: view, Notice: &notice}, nil
}
