package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T, amount float64) *Invoice {
	t.Helper()
	invoice, err := NewInvoice("INV-2026-00001", uuid.New(), "Awa Diop", valueobject.NewMoneyXOFFromFloat(amount))
	require.NoError(t, err)
	return invoice
}

func TestNewInvoice(t *testing.T) {
	t.Run("opens unpaid invoice", func(t *testing.T) {
		invoice := newTestInvoice(t, 4770)
		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.True(t, invoice.PaidAmount.IsZero())
		assert.Equal(t, "4770.00", invoice.Outstanding().StringFixed(2))
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), "X", valueobject.ZeroXOF())
		assert.Error(t, err)
	})

	t.Run("rejects nil sale", func(t *testing.T) {
		_, err := NewInvoice("INV-2026-00001", uuid.Nil, "X", valueobject.ZeroXOF())
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewInvoice("INV-2026-00001", uuid.New(), "X", valueobject.NewMoneyXOFFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestInvoice_RecordPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		invoice := newTestInvoice(t, 4770)

		require.NoError(t, invoice.RecordPayment(valueobject.NewMoneyXOFFromFloat(1770)))
		assert.Equal(t, InvoiceStatusPartial, invoice.Status)
		assert.Equal(t, "3000.00", invoice.Outstanding().StringFixed(2))

		require.NoError(t, invoice.RecordPayment(valueobject.NewMoneyXOFFromFloat(3000)))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.True(t, invoice.IsSettled())
		assert.True(t, invoice.Outstanding().IsZero())
	})

	t.Run("payment cannot exceed amount", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		err := invoice.RecordPayment(valueobject.NewMoneyXOFFromFloat(1001))
		require.Error(t, err)
		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.True(t, invoice.PaidAmount.IsZero())
	})

	t.Run("rejects non-positive payment", func(t *testing.T) {
		invoice := newTestInvoice(t, 1000)
		assert.Error(t, invoice.RecordPayment(valueobject.ZeroXOF()))
		assert.Error(t, invoice.RecordPayment(valueobject.NewMoneyXOFFromFloat(-5)))
	})
}

func TestInvoice_SetDueDate(t *testing.T) {
	invoice := newTestInvoice(t, 100)
	due := time.Now().AddDate(0, 1, 0)
	invoice.SetDueDate(due)
	require.NotNil(t, invoice.DueDate)
	assert.WithinDuration(t, due, *invoice.DueDate, time.Second)
}
