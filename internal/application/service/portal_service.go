package service

import (
	"context"
	"sort"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

// PortalService serves the logged-in customer's own data.
type PortalService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	receipts     *ReceiptService
}

// NewPortalService creates a new customer portal service
func NewPortalService(customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository, receipts *ReceiptService) *PortalService {
	return &PortalService{customerRepo: customerRepo, invoiceRepo: invoiceRepo, receipts: receipts}
}

// Profile returns the customer record of the logged-in customer.
func (s *PortalService) Profile(ctx context.Context) (*entity.Customer, error) {
	return s.customerRepo.Me(ctx)
}

// Invoices lists the customer's invoices, newest first.
func (s *PortalService) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	me, err := s.customerRepo.Me(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListByCustomer(ctx, me.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt.Time)
	})
	return invoices, nil
}

// Invoice returns one of the customer's own invoices. Other customers'
// invoices are reported as not found.
func (s *PortalService) Invoice(ctx context.Context, id string) (*entity.Invoice, error) {
	me, err := s.customerRepo.Me(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetForCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID != me.ID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return inv, nil
}

// Receipt builds the receipt of one of the customer's own invoices.
func (s *PortalService) Receipt(ctx context.Context, id string) (*entity.Receipt, error) {
	return s.receipts.CustomerReceipt(ctx, id)
}
