package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/telops/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeArticle = "Article"

// Event type constants
const (
	EventTypeArticleCreated       = "ArticleCreated"
	EventTypeArticlePriceChanged  = "ArticlePriceChanged"
	EventTypeArticleStockAdjusted = "ArticleStockAdjusted"
)

// ArticleCreatedEvent is raised when a new article is added to the catalog
type ArticleCreatedEvent struct {
	shared.BaseDomainEvent
	ArticleID uuid.UUID       `json:"article_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  ArticleCategory `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tracked   bool            `json:"tracked"`
}

// NewArticleCreatedEvent creates a new ArticleCreatedEvent
func NewArticleCreatedEvent(article *Article) *ArticleCreatedEvent {
	return &ArticleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticleCreated, AggregateTypeArticle, article.ID),
		ArticleID:       article.ID,
		Code:            article.Code,
		Name:            article.Name,
		Category:        article.Category,
		UnitPrice:       article.UnitPrice,
		Tracked:         article.TracksStock(),
	}
}

// EventType returns the event type name
func (e *ArticleCreatedEvent) EventType() string {
	return EventTypeArticleCreated
}

// ArticlePriceChangedEvent is raised when the unit price changes.
// Existing sale items keep their snapshotted price.
type ArticlePriceChangedEvent struct {
	shared.BaseDomainEvent
	ArticleID uuid.UUID       `json:"article_id"`
	Code      string          `json:"code"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// NewArticlePriceChangedEvent creates a new ArticlePriceChangedEvent
func NewArticlePriceChangedEvent(article *Article, oldPrice decimal.Decimal) *ArticlePriceChangedEvent {
	return &ArticlePriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticlePriceChanged, AggregateTypeArticle, article.ID),
		ArticleID:       article.ID,
		Code:            article.Code,
		OldPrice:        oldPrice,
		NewPrice:        article.UnitPrice,
	}
}

// EventType returns the event type name
func (e *ArticlePriceChangedEvent) EventType() string {
	return EventTypeArticlePriceChanged
}

// ArticleStockAdjustedEvent is raised whenever tracked stock changes
type ArticleStockAdjustedEvent struct {
	shared.BaseDomainEvent
	ArticleID uuid.UUID `json:"article_id"`
	Code      string    `json:"code"`
	Delta     int64     `json:"delta"`
	NewStock  int64     `json:"new_stock"`
}

// NewArticleStockAdjustedEvent creates a new ArticleStockAdjustedEvent
func NewArticleStockAdjustedEvent(article *Article, delta int64) *ArticleStockAdjustedEvent {
	var newStock int64
	if article.Stock != nil {
		newStock = *article.Stock
	}
	return &ArticleStockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticleStockAdjusted, AggregateTypeArticle, article.ID),
		ArticleID:       article.ID,
		Code:            article.Code,
		Delta:           delta,
		NewStock:        newStock,
	}
}

// EventType returns the event type name
func (e *ArticleStockAdjustedEvent) EventType() string {
	return EventTypeArticleStockAdjusted
}
