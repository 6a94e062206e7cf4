package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/telops/backend/internal/domain/billing"
)

// RecordPaymentRequest represents a payment applied to an invoice
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SetDueDateRequest represents a request to set the payment due date
type SetDueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// InvoiceListFilter represents filter options for invoice listings
type InvoiceListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=UNPAID PARTIAL PAID"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ClientName  string          `json:"client_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice aggregate to its response DTO
func ToInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          invoice.ID,
		Number:      invoice.Number,
		SaleID:      invoice.SaleID,
		ClientName:  invoice.ClientName,
		Amount:      invoice.Amount,
		PaidAmount:  invoice.PaidAmount,
		Outstanding: invoice.Amount.Sub(invoice.PaidAmount),
		Status:      invoice.Status.String(),
		DueDate:     invoice.DueDate,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
