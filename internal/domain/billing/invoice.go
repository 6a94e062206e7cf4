package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"
	InvoiceStatusPartial InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice tracks the amount owed for a completed sale.
// PaidAmount never exceeds Amount; status derives from the two.
type Invoice struct {
	shared.BaseAggregateRoot
	Number     string    `gorm:"uniqueIndex;size:50;not null"`
	SaleID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientName string    `gorm:"size:200"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	PaidAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status     InvoiceStatus   `gorm:"size:20;not null;index"`
	DueDate    *time.Time
}

// NewInvoice opens an invoice for a completed sale
func NewInvoice(number string, saleID uuid.UUID, clientName string, amount valueobject.Money) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Invoice requires a sale reference")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SaleID:            saleID,
		ClientName:        strings.TrimSpace(clientName),
		Amount:            amount.Amount(),
		PaidAmount:        decimal.Zero,
		Status:            InvoiceStatusUnpaid,
	}, nil
}

// SetDueDate sets the payment due date
func (i *Invoice) SetDueDate(due time.Time) {
	i.DueDate = &due
	i.UpdatedAt = time.Now()
}

// RecordPayment applies a payment. The running paid amount must stay within
// the invoice amount.
func (i *Invoice) RecordPayment(payment valueobject.Money) error {
	if !payment.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}

	next := i.PaidAmount.Add(payment.Amount())
	if next.GreaterThan(i.Amount) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_AMOUNT",
			fmt.Sprintf("Payment would exceed invoice amount: %s paid of %s", next, i.Amount))
	}

	i.PaidAmount = next
	i.refreshStatus()
	i.UpdatedAt = time.Now()
	return nil
}

// Outstanding returns the unpaid remainder
func (i *Invoice) Outstanding() valueobject.Money {
	return valueobject.NewMoneyXOF(i.Amount.Sub(i.PaidAmount))
}

// IsSettled returns true once the invoice is fully paid
func (i *Invoice) IsSettled() bool {
	return i.Status == InvoiceStatusPaid
}

func (i *Invoice) refreshStatus() {
	switch {
	case i.PaidAmount.Equal(i.Amount):
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.IsPositive():
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusUnpaid
	}
}
