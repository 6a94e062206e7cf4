package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/billing"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T, number string, saleID uuid.UUID) *billing.Invoice {
	t.Helper()
	amount := valueobject.NewMoneyXOF(decimal.NewFromInt(120000))
	invoice, err := billing.NewInvoice(number, saleID, "Aminata Diallo", amount)
	require.NoError(t, err)
	invoice.ClearDomainEvents()
	return invoice
}

func TestInvoiceRepository_SaveAndFindBySaleID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	invoice := newTestInvoice(t, "INV-2025-00001", saleID)
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindBySaleID(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, found.ID)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(120000)))

	_, err = repo.FindBySaleID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceRepository_OneInvoicePerSale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestInvoice(t, "INV-2025-00010", saleID)))

	err := repo.Save(ctx, newTestInvoice(t, "INV-2025-00011", saleID))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
}

func TestInvoiceRepository_NextNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	number, err := repo.NextNumber(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-00001", number)

	require.NoError(t, repo.Save(ctx, newTestInvoice(t, "INV-2025-00003", uuid.New())))

	number, err = repo.NextNumber(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-00004", number)

	number, err = repo.NextNumber(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", number)
}

func TestInvoiceRepository_FilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, "INV-2025-00020", uuid.New())
	require.NoError(t, repo.Save(ctx, invoice))
	require.NoError(t, repo.Save(ctx, newTestInvoice(t, "INV-2025-00021", uuid.New())))

	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{"status": billing.InvoiceStatusUnpaid}

	invoices, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
