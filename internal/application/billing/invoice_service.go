package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/billing"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles the invoice ledger
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
	}
}

// OpenForSale creates the invoice for a completed sale. A sale carries at
// most one invoice; a second attempt returns the existing one.
func (s *InvoiceService) OpenForSale(ctx context.Context, saleID uuid.UUID, clientName string, amount valueobject.Money) (*InvoiceResponse, error) {
	if existing, err := s.invoiceRepo.FindBySaleID(ctx, saleID); err == nil && existing != nil {
		response := ToInvoiceResponse(existing)
		return &response, nil
	}

	number, err := s.invoiceRepo.NextNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, saleID, clientName, amount)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetBySaleID retrieves the invoice opened for a sale
func (s *InvoiceService) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// RecordPayment applies a payment to an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RecordPayment(valueobject.NewMoneyXOF(req.Amount)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// SetDueDate sets the payment due date on an invoice
func (s *InvoiceService) SetDueDate(ctx context.Context, invoiceID uuid.UUID, req SetDueDateRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	invoice.SetDueDate(req.DueDate)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}
