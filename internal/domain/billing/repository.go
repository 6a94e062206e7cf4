package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	// NextNumber proposes the next free invoice number for the given year
	// (INV-YYYY-NNNNN). The unique constraint remains the authority.
	NextNumber(ctx context.Context, year int) (string, error)
}
