package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

func newDraftSale(t *testing.T) *Sale {
	t.Helper()
	clientID := uuid.New()
	sale, err := NewSale("SAL-2026-00001", &clientID, "Awa Diop", uuid.New())
	require.NoError(t, err)
	return sale
}

func newArticle(t *testing.T, code string, price float64, stock *int64) *catalog.Article {
	t.Helper()
	article, err := catalog.NewArticle(code, "Article "+code, catalog.CategoryHardware, valueobject.NewMoneyXOFFromFloat(price), stock)
	require.NoError(t, err)
	return article
}

func stockOf(v int64) *int64 { return &v }

func TestSaleStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     SaleStatus
		to       SaleStatus
		canTrans bool
	}{
		{SaleStatusDraft, SaleStatusValidated, true},
		{SaleStatusDraft, SaleStatusCancelled, true},
		{SaleStatusDraft, SaleStatusCompleted, false},
		{SaleStatusValidated, SaleStatusCompleted, true},
		{SaleStatusValidated, SaleStatusCancelled, false},
		{SaleStatusValidated, SaleStatusDraft, false},
		{SaleStatusCompleted, SaleStatusCancelled, false},
		{SaleStatusCompleted, SaleStatusDraft, false},
		{SaleStatusCancelled, SaleStatusDraft, false},
		{SaleStatusCancelled, SaleStatusValidated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSaleStatus_IsValid(t *testing.T) {
	assert.True(t, SaleStatusDraft.IsValid())
	assert.True(t, SaleStatusValidated.IsValid())
	assert.True(t, SaleStatusCompleted.IsValid())
	assert.True(t, SaleStatusCancelled.IsValid())
	assert.False(t, SaleStatus("SHIPPED").IsValid())
}

func TestNewSale(t *testing.T) {
	t.Run("creates draft sale", func(t *testing.T) {
		sale := newDraftSale(t)
		assert.Equal(t, SaleStatusDraft, sale.Status)
		assert.True(t, sale.TotalAmount.IsZero())
		assert.NotNil(t, sale.CreatedBy)
		assert.Len(t, sale.GetDomainEvents(), 1)
	})

	t.Run("allows nil client with name snapshot", func(t *testing.T) {
		sale, err := NewSale("SAL-2026-00002", nil, "Walk-in customer", uuid.New())
		require.NoError(t, err)
		assert.Nil(t, sale.ClientID)
		assert.Equal(t, "Walk-in customer", sale.ClientName)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewSale("", nil, "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects missing creator", func(t *testing.T) {
		_, err := NewSale("SAL-2026-00003", nil, "", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestSale_AddItem(t *testing.T) {
	t.Run("snapshots price and decrements stock", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART001", 1590.00, stockOf(10))

		item, err := sale.AddItem(article, 3)
		require.NoError(t, err)

		assert.Equal(t, "ART001", item.ArticleCode)
		assert.Equal(t, "4770.00", item.TotalPrice.StringFixed(2))
		assert.Equal(t, "4770.00", sale.TotalAmount.StringFixed(2))

		stock, _ := article.AvailableStock()
		assert.Equal(t, int64(7), stock)
	})

	t.Run("insufficient stock leaves sale and stock unchanged", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART002", 100, stockOf(2))

		_, err := sale.AddItem(article, 5)
		require.Error(t, err)
		var stockErr *catalog.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(2), stockErr.Available)
		assert.Equal(t, int64(5), stockErr.Requested)

		assert.Zero(t, sale.ItemCount())
		assert.True(t, sale.TotalAmount.IsZero())
		stock, _ := article.AvailableStock()
		assert.Equal(t, int64(2), stock)
	})

	t.Run("later price change does not reprice the item", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART003", 1000, nil)

		item, err := sale.AddItem(article, 2)
		require.NoError(t, err)

		require.NoError(t, article.UpdatePrice(valueobject.NewMoneyXOFFromFloat(2000)))
		assert.Equal(t, "1000.00", item.UnitPrice.StringFixed(2))
		assert.Equal(t, "2000.00", sale.TotalAmount.StringFixed(2))
	})

	t.Run("rejected outside draft", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART004", 100, nil)
		_, err := sale.AddItem(article, 1)
		require.NoError(t, err)
		require.NoError(t, sale.Validate(uuid.New()))

		_, err = sale.AddItem(article, 1)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeSaleNotEditable, domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART005", 100, nil)
		_, err := sale.AddItem(article, 0)
		assert.Error(t, err)
	})
}

func TestSale_RemoveItem(t *testing.T) {
	t.Run("removes item and recomputes total", func(t *testing.T) {
		sale := newDraftSale(t)
		a1 := newArticle(t, "ART001", 1590, stockOf(10))
		a2 := newArticle(t, "ART002", 500, nil)

		item1, err := sale.AddItem(a1, 3)
		require.NoError(t, err)
		_, err = sale.AddItem(a2, 2)
		require.NoError(t, err)
		assert.Equal(t, "5770.00", sale.TotalAmount.StringFixed(2))

		removed, err := sale.RemoveItem(item1.ID)
		require.NoError(t, err)
		assert.Equal(t, item1.ID, removed.ID)
		assert.Equal(t, int64(3), removed.Quantity)
		assert.Equal(t, "1000.00", sale.TotalAmount.StringFixed(2))
		assert.Equal(t, 1, sale.ItemCount())
	})

	t.Run("unknown item", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.RemoveItem(uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeItemNotFound, domainErr.Code)
	})

	t.Run("rejected outside draft", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART001", 100, nil)
		item, err := sale.AddItem(article, 1)
		require.NoError(t, err)
		require.NoError(t, sale.Validate(uuid.New()))

		_, err = sale.RemoveItem(item.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeSaleNotEditable, domainErr.Code)
	})
}

func TestSale_TotalInvariant(t *testing.T) {
	t.Run("holds under add and remove sequences", func(t *testing.T) {
		sale := newDraftSale(t)
		articles := []*catalog.Article{
			newArticle(t, "A1", 1590, stockOf(100)),
			newArticle(t, "A2", 250.50, nil),
			newArticle(t, "A3", 9900, stockOf(50)),
		}

		var itemIDs []uuid.UUID
		for turn := 0; turn < 10; turn++ {
			article := articles[turn%len(articles)]
			item, err := sale.AddItem(article, int64(turn%4+1))
			require.NoError(t, err)
			itemIDs = append(itemIDs, item.ID)
			require.NoError(t, sale.CheckTotalInvariant())
		}
		for _, id := range itemIDs[:5] {
			_, err := sale.RemoveItem(id)
			require.NoError(t, err)
			require.NoError(t, sale.CheckTotalInvariant())
		}
	})

	t.Run("detects drift", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "A1", 100, nil)
		_, err := sale.AddItem(article, 1)
		require.NoError(t, err)

		sale.TotalAmount = sale.TotalAmount.Add(sale.TotalAmount)
		err = sale.CheckTotalInvariant()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvariantViolation, domainErr.Code)
	})
}

func TestSale_Lifecycle(t *testing.T) {
	t.Run("draft to validated to completed", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART001", 1590, stockOf(10))
		_, err := sale.AddItem(article, 3)
		require.NoError(t, err)

		actor := uuid.New()
		require.NoError(t, sale.Validate(actor))
		assert.Equal(t, SaleStatusValidated, sale.Status)
		require.NotNil(t, sale.ValidatedBy)
		assert.Equal(t, actor, *sale.ValidatedBy)
		assert.NotNil(t, sale.ValidatedAt)

		require.NoError(t, sale.Complete())
		assert.Equal(t, SaleStatusCompleted, sale.Status)
		assert.NotNil(t, sale.CompletedAt)
		assert.True(t, sale.IsTerminal())
	})

	t.Run("complete from draft is illegal", func(t *testing.T) {
		sale := newDraftSale(t)
		err := sale.Complete()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
	})

	t.Run("validate requires items", func(t *testing.T) {
		sale := newDraftSale(t)
		assert.Error(t, sale.Validate(uuid.New()))
	})

	t.Run("validate twice is illegal", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART001", 100, nil)
		_, err := sale.AddItem(article, 1)
		require.NoError(t, err)
		require.NoError(t, sale.Validate(uuid.New()))

		err = sale.Validate(uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
	})

	t.Run("cancel draft", func(t *testing.T) {
		sale := newDraftSale(t)
		require.NoError(t, sale.Cancel("duplicate entry"))
		assert.Equal(t, SaleStatusCancelled, sale.Status)
		assert.NotNil(t, sale.CancelledAt)
	})

	t.Run("cancel validated is illegal", func(t *testing.T) {
		sale := newDraftSale(t)
		article := newArticle(t, "ART001", 100, nil)
		_, err := sale.AddItem(article, 1)
		require.NoError(t, err)
		require.NoError(t, sale.Validate(uuid.New()))

		assert.Error(t, sale.Cancel("too late"))
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		sale := newDraftSale(t)
		assert.Error(t, sale.Cancel("  "))
	})
}

// Full walkthrough of the catalogued reference scenario: stock 10 at
// 1590.00, add 3, validate, complete, then attempt a removal.
func TestSale_ReferenceScenario(t *testing.T) {
	article := newArticle(t, "ART001", 1590.00, stockOf(10))
	sale := newDraftSale(t)

	item, err := sale.AddItem(article, 3)
	require.NoError(t, err)
	assert.Equal(t, "4770.00", sale.TotalAmount.StringFixed(2))
	stock, _ := article.AvailableStock()
	assert.Equal(t, int64(7), stock)

	require.NoError(t, sale.Validate(uuid.New()))
	require.NoError(t, sale.Complete())
	assert.Equal(t, SaleStatusCompleted, sale.Status)

	_, err = sale.RemoveItem(item.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeSaleNotEditable, domainErr.Code)
}
