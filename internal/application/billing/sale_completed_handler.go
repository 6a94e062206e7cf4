package billing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// SaleCompletedHandler opens an invoice whenever a sale reaches COMPLETED.
// Invoice creation is idempotent per sale, so a re-delivered event is harmless.
type SaleCompletedHandler struct {
	invoiceService *InvoiceService
	logger         *zap.Logger
}

// NewSaleCompletedHandler creates a new handler for sale completion events
func NewSaleCompletedHandler(invoiceService *InvoiceService, logger *zap.Logger) *SaleCompletedHandler {
	return &SaleCompletedHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleCompletedHandler) EventTypes() []string {
	return []string{sales.EventTypeSaleCompleted}
}

// Handle processes a SaleCompletedEvent
func (h *SaleCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completedEvent, ok := event.(*sales.SaleCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", sales.EventTypeSaleCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventTypeSaleCompleted, event.EventType())
	}

	amount := valueobject.NewMoneyXOF(completedEvent.TotalAmount)
	invoice, err := h.invoiceService.OpenForSale(ctx, completedEvent.SaleID, completedEvent.ClientName, amount)
	if err != nil {
		h.logger.Error("failed to open invoice for completed sale",
			zap.String("sale_id", completedEvent.SaleID.String()),
			zap.String("reference", completedEvent.Reference),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("invoice opened for completed sale",
		zap.String("invoice_number", invoice.Number),
		zap.String("sale_reference", completedEvent.Reference),
		zap.String("amount", invoice.Amount.String()),
	)

	return nil
}

// Ensure SaleCompletedHandler implements shared.EventHandler
var _ shared.EventHandler = (*SaleCompletedHandler)(nil)
