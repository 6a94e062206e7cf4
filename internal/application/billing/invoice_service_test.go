package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/billing"
	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func TestInvoiceService_OpenForSale(t *testing.T) {
	t.Run("opens a new invoice", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		service := NewInvoiceService(repo)

		saleID := uuid.New()
		repo.On("FindBySaleID", mock.Anything, saleID).Return(nil, shared.ErrNotFound)
		repo.On("NextNumber", mock.Anything, time.Now().Year()).Return("INV-2025-00001", nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		amount, err := valueobject.NewMoneyXOFFromString("4770.00")
		require.NoError(t, err)

		response, err := service.OpenForSale(context.Background(), saleID, "Awa Traore", amount)
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-00001", response.Number)
		assert.Equal(t, "UNPAID", response.Status)
		assert.True(t, response.Amount.Equal(decimal.NewFromInt(4770)))
	})

	t.Run("second attempt returns the existing invoice", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		service := NewInvoiceService(repo)

		saleID := uuid.New()
		amount, err := valueobject.NewMoneyXOFFromString("4770.00")
		require.NoError(t, err)
		existing, err := billing.NewInvoice("INV-2025-00001", saleID, "Awa Traore", amount)
		require.NoError(t, err)

		repo.On("FindBySaleID", mock.Anything, saleID).Return(existing, nil)

		response, err := service.OpenForSale(context.Background(), saleID, "Awa Traore", amount)
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-00001", response.Number)
		repo.AssertNotCalled(t, "NextNumber", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	repo := new(MockInvoiceRepository)
	service := NewInvoiceService(repo)

	amount, err := valueobject.NewMoneyXOFFromString("50000.00")
	require.NoError(t, err)
	invoice, err := billing.NewInvoice("INV-2025-00002", uuid.New(), "Moussa Kone", amount)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	repo.On("Save", mock.Anything, invoice).Return(nil)

	partial, err := service.RecordPayment(context.Background(), invoice.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", partial.Status)
	assert.True(t, partial.Outstanding.Equal(decimal.NewFromInt(30000)))

	paid, err := service.RecordPayment(context.Background(), invoice.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(30000),
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", paid.Status)

	// Overpayment is rejected
	_, err = service.RecordPayment(context.Background(), invoice.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(1),
	})
	require.Error(t, err)
}

func TestSaleCompletedHandler(t *testing.T) {
	t.Run("opens invoice from completion event", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		service := NewInvoiceService(repo)
		handler := NewSaleCompletedHandler(service, zap.NewNop())

		saleID := uuid.New()
		repo.On("FindBySaleID", mock.Anything, saleID).Return(nil, shared.ErrNotFound)
		repo.On("NextNumber", mock.Anything, mock.Anything).Return("INV-2025-00003", nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(inv *billing.Invoice) bool {
			return inv.SaleID == saleID && inv.ClientName == "Awa Traore"
		})).Return(nil)

		event := &sales.SaleCompletedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeSaleCompleted, sales.AggregateTypeSale, saleID),
			SaleID:          saleID,
			Reference:       "SAL-2025-00001",
			ClientName:      "Awa Traore",
			TotalAmount:     decimal.NewFromInt(4770),
		}

		err := handler.Handle(context.Background(), event)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		handler := NewSaleCompletedHandler(NewInvoiceService(new(MockInvoiceRepository)), zap.NewNop())

		event := &sales.SaleCancelledEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeSaleCancelled, sales.AggregateTypeSale, uuid.New()),
		}

		err := handler.Handle(context.Background(), event)
		require.Error(t, err)
	})

	t.Run("subscribes to sale completion only", func(t *testing.T) {
		handler := NewSaleCompletedHandler(NewInvoiceService(new(MockInvoiceRepository)), zap.NewNop())
		assert.Equal(t, []string{sales.EventTypeSaleCompleted}, handler.EventTypes())
	})
}
