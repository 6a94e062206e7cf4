package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/telops/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCreated   = "SaleCreated"
	EventTypeSaleValidated = "SaleValidated"
	EventTypeSaleCompleted = "SaleCompleted"
	EventTypeSaleCancelled = "SaleCancelled"
)

// SaleCreatedEvent is raised when a new draft sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID  `json:"sale_id"`
	Reference  string     `json:"reference"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName string     `json:"client_name"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Reference:       sale.Reference,
		ClientID:        sale.ClientID,
		ClientName:      sale.ClientName,
	}
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return EventTypeSaleCreated
}

// SaleValidatedEvent is raised when a sale passes from DRAFT to VALIDATED
type SaleValidatedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	Reference   string          `json:"reference"`
	ValidatedBy uuid.UUID       `json:"validated_by"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSaleValidatedEvent creates a new SaleValidatedEvent
func NewSaleValidatedEvent(sale *Sale, actorID uuid.UUID) *SaleValidatedEvent {
	return &SaleValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleValidated, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Reference:       sale.Reference,
		ValidatedBy:     actorID,
		TotalAmount:     sale.TotalAmount,
	}
}

// EventType returns the event type name
func (e *SaleValidatedEvent) EventType() string {
	return EventTypeSaleValidated
}

// SaleCompletedEvent is raised when a sale reaches COMPLETED.
// The billing context consumes it to open an invoice.
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	Reference   string          `json:"reference"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	ClientName  string          `json:"client_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Reference:       sale.Reference,
		ClientID:        sale.ClientID,
		ClientName:      sale.ClientName,
		TotalAmount:     sale.TotalAmount,
	}
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return EventTypeSaleCompleted
}

// SaleCancelledEvent is raised when a draft sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID    uuid.UUID `json:"sale_id"`
	Reference string    `json:"reference"`
	Reason    string    `json:"reason"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(sale *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Reference:       sale.Reference,
		Reason:          sale.CancelReason,
	}
}

// EventType returns the event type name
func (e *SaleCancelledEvent) EventType() string {
	return EventTypeSaleCancelled
}
