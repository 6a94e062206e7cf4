package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// ArticleCategory classifies catalog articles
type ArticleCategory string

const (
	CategorySubscription ArticleCategory = "SUBSCRIPTION"
	CategoryHardware     ArticleCategory = "HARDWARE"
)

// IsValid checks if the category is a known ArticleCategory
func (c ArticleCategory) IsValid() bool {
	switch c {
	case CategorySubscription, CategoryHardware:
		return true
	}
	return false
}

// String returns the string representation of ArticleCategory
func (c ArticleCategory) String() string {
	return string(c)
}

// Article represents a sellable catalog item.
// Stock is nil for articles whose inventory is not tracked; those articles
// are always considered available. Tracked stock never goes below zero.
type Article struct {
	shared.BaseAggregateRoot
	Code      string `gorm:"uniqueIndex;size:50;not null"`
	Name      string `gorm:"size:200;not null"`
	Category  ArticleCategory
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Stock     *int64
	Active    bool `gorm:"not null;default:true"`
}

// NewArticle creates a new catalog article.
// Pass nil stock for untracked inventory.
func NewArticle(code, name string, category ArticleCategory, unitPrice valueobject.Money, stock *int64) (*Article, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewDomainError("INVALID_ARTICLE_CODE", "Article code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_ARTICLE_CODE", "Article code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ARTICLE_NAME", "Article name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown article category")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if stock != nil && *stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	article := &Article{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Category:          category,
		UnitPrice:         unitPrice.Amount(),
		Active:            true,
	}
	if stock != nil {
		s := *stock
		article.Stock = &s
	}

	article.AddDomainEvent(NewArticleCreatedEvent(article))

	return article, nil
}

// TracksStock returns true if the article's inventory is tracked
func (a *Article) TracksStock() bool {
	return a.Stock != nil
}

// AvailableStock returns the current stock quantity for tracked articles.
// The second return value is false for untracked articles.
func (a *Article) AvailableStock() (int64, bool) {
	if a.Stock == nil {
		return 0, false
	}
	return *a.Stock, true
}

// GetUnitPriceMoney returns the unit price as Money value object
func (a *Article) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyXOF(a.UnitPrice)
}

// UpdatePrice changes the article's unit price.
// Sales that already snapshotted the old price are unaffected.
func (a *Article) UpdatePrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	old := a.UnitPrice
	a.UnitPrice = unitPrice.Amount()
	a.UpdatedAt = time.Now()

	if !old.Equal(a.UnitPrice) {
		a.AddDomainEvent(NewArticlePriceChangedEvent(a, old))
	}
	return nil
}

// Rename changes the display name
func (a *Article) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ARTICLE_NAME", "Article name cannot be empty")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the article from sale without deleting it
func (a *Article) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}

// Activate makes the article sellable again
func (a *Article) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
}

// AdjustStock applies a signed delta to tracked stock.
// Restocking uses a positive delta, corrections may be negative.
// The resulting quantity must not be negative.
func (a *Article) AdjustStock(delta int64) error {
	if a.Stock == nil {
		return shared.NewDomainError("STOCK_NOT_TRACKED", "Article does not track stock")
	}
	next := *a.Stock + delta
	if next < 0 {
		return &InsufficientStockError{
			ArticleID:   a.ID,
			ArticleCode: a.Code,
			Available:   *a.Stock,
			Requested:   -delta,
		}
	}
	a.Stock = &next
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewArticleStockAdjustedEvent(a, delta))

	return nil
}

// ReserveStock decrements tracked stock for a sale line item.
// Untracked articles always succeed.
func (a *Article) ReserveStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if a.Stock == nil {
		return nil
	}
	if *a.Stock < quantity {
		return &InsufficientStockError{
			ArticleID:   a.ID,
			ArticleCode: a.Code,
			Available:   *a.Stock,
			Requested:   quantity,
		}
	}
	return a.AdjustStock(-quantity)
}

// ReleaseStock returns previously reserved stock when a line item is removed.
// Untracked articles are a no-op.
func (a *Article) ReleaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if a.Stock == nil {
		return nil
	}
	return a.AdjustStock(quantity)
}

// IsSellable returns true if items may be added against this article
func (a *Article) IsSellable() bool {
	return a.Active
}
